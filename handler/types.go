package handler

import (
	"context"
	"net/url"

	"github.com/snowie2000/hdhomerun/global"
	"github.com/snowie2000/hdhomerun/model"
	"github.com/snowie2000/hdhomerun/service"
)

// SettingStore is the settings table as seen by the web layer.
type SettingStore interface {
	Get(key string) (string, error)
	GetBool(key string) bool
	Set(key, value string) error
	ToMap() map[string]string
	Save(form url.Values) error
	Load() global.Settings
}

// ChannelLogic is the channel management the ajax, api and proxy routes delegate to.
type ChannelLogic interface {
	ChannelList(onlyUse bool) ([]model.Channel, error)
	GroupSort() ([]service.Group, error)
	Save(payload string) error
	Delete(id uint) (bool, error)
	MatchForEpgName(id uint, name string) (model.Channel, error)
	IPFix(ctx context.Context, deviceID string) (*service.IPFixResult, error)
	M3U() (string, error)
	Groups() ([]string, error)
	ScanStatus() service.StatusInfo
	LoadData(ctx context.Context) (*service.LoadResult, error)
}

// Discover mimics the discover.json of an HDHomeRun CONNECT.
type Discover struct {
	FriendlyName    string `json:"FriendlyName"`
	ModelNumber     string `json:"ModelNumber"`
	FirmwareName    string `json:"FirmwareName"`
	FirmwareVersion string `json:"FirmwareVersion"`
	DeviceID        string `json:"DeviceID"`
	DeviceAuth      string `json:"DeviceAuth"`
	BaseURL         string `json:"BaseURL"`
	LineupURL       string `json:"LineupURL"`
	TunerCount      int    `json:"TunerCount"`
}

type LineupStatus struct {
	ScanInProgress int      `json:"ScanInProgress"`
	ScanPossible   int      `json:"ScanPossible"`
	Source         string   `json:"Source"`
	SourceList     []string `json:"SourceList"`
}

type LineupEntry struct {
	GuideNumber string `json:"GuideNumber"`
	GuideName   string `json:"GuideName"`
	URL         string `json:"URL"`
}

type MenuItem struct {
	Sub   string
	Title string
}
