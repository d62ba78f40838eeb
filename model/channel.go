package model

import (
	"crypto/md5"
	"encoding/hex"
	"time"
)

// Channel is one tuner channel as curated by the operator.
type Channel struct {
	ID         uint      `gorm:"primary_key" json:"id"`
	Use        bool      `gorm:"column:in_use;index" json:"use"`
	ChNumber   int       `gorm:"index" json:"ch_number"`
	ScanVID    string    `gorm:"column:scan_vid" json:"scan_vid"` // guide number reported by the tuner
	ScanName   string    `json:"scan_name"`
	ScanURL    string    `json:"scan_url"`
	URL        string    `json:"url"`
	GroupName  string    `gorm:"index" json:"group_name"`
	ForEpgName string    `json:"for_epg_name"`
	Logo       string    `json:"logo"`
	CreatedAt  time.Time `json:"created_at"`
}

// Digest identifies a channel by the guide number the tuner reported for it,
// which survives a change of tuner address.
func (c *Channel) Digest() string {
	hash := md5.Sum([]byte(c.ScanVID))
	return hex.EncodeToString(hash[:])
}

// EpgName is the name used to match the channel against an EPG source.
func (c *Channel) EpgName() string {
	if c.ForEpgName != "" {
		return c.ForEpgName
	}
	return c.ScanName
}

// Config is a single key/value setting row.
type Config struct {
	Name string `gorm:"primary_key"`
	Data string
}
