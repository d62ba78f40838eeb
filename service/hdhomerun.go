package service

import (
	"context"

	"github.com/snowie2000/hdhomerun/device"
	"github.com/snowie2000/hdhomerun/global"
	"github.com/snowie2000/hdhomerun/model"
)

// HDHomeRun is the channel logic the web layer talks to.
type HDHomeRun struct{}

func (HDHomeRun) ChannelList(onlyUse bool) ([]model.Channel, error) { return GetAllChannel(onlyUse) }
func (HDHomeRun) GroupSort() ([]Group, error)                       { return GroupSort() }
func (HDHomeRun) Save(payload string) error                         { return SaveChannels(payload) }
func (HDHomeRun) Delete(id uint) (bool, error)                      { return DeleteChannel(id) }
func (HDHomeRun) M3U() (string, error)                              { return M3UGenerate() }
func (HDHomeRun) Groups() ([]string, error)                         { return AllGroups() }

// ScanStatus reports the last scan of the configured tuner.
func (HDHomeRun) ScanStatus() StatusInfo {
	return GetStatus(device.Host(global.LoadSettings().DeviceID))
}

func (HDHomeRun) MatchForEpgName(id uint, name string) (model.Channel, error) {
	return MatchForEpgName(id, name)
}

func (HDHomeRun) IPFix(ctx context.Context, deviceID string) (*IPFixResult, error) {
	return IPFix(ctx, deviceID)
}

func (HDHomeRun) LoadData(ctx context.Context) (*LoadResult, error) {
	return LoadData(ctx)
}
