package service

import (
	"time"

	"github.com/snowie2000/hdhomerun/syncx"
)

// StatusInfo is the outcome of the last scan of a tuner.
type StatusInfo struct {
	Time       time.Time `json:"time"`
	RetryCount int       `json:"retry_count"`
	Status     int       `json:"status"`
	Msg        string    `json:"msg"`
}

const (
	Unknown = iota
	Ok
	Warning
	Error
)

var statusCache syncx.Map[string, *StatusInfo]

func UpdateStatus(device string, status int, msg string) {
	if c, ok := statusCache.Load(device); ok {
		next := *c
		next.Msg = msg
		next.Status = status
		next.Time = time.Now()
		if status == Ok {
			next.RetryCount = 0
		} else {
			next.RetryCount++
		}
		statusCache.Store(device, &next)
		return
	}
	statusCache.Store(device, &StatusInfo{
		Msg:    msg,
		Status: status,
		Time:   time.Now(),
	})
}

func GetStatus(device string) StatusInfo {
	if c, ok := statusCache.Load(device); ok {
		return *c
	}
	return StatusInfo{
		Status: Unknown,
		Msg:    "Not yet scanned",
	}
}
