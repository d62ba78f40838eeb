package handler

import (
	"context"
	"net/url"
	"sync"

	"github.com/snowie2000/hdhomerun/global"
	"github.com/snowie2000/hdhomerun/model"
	"github.com/snowie2000/hdhomerun/service"
	"github.com/snowie2000/hdhomerun/util"
)

type fakeSettings struct {
	mu      sync.Mutex
	m       map[string]string
	saveErr error
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{m: map[string]string{
		"deviceid":           "",
		"ddns":               "http://host:9000",
		"auth_use_apikey":    "False",
		"auth_apikey":        "",
		"password":           "secret",
		"auto_scan":          "False",
		"auto_scan_interval": "@every 6h",
		"proxy_url":          "",
	}}
}

func (f *fakeSettings) Get(key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.m[key]
	if !ok {
		return "", global.ErrConfigNotFound
	}
	return v, nil
}

func (f *fakeSettings) GetBool(key string) bool {
	v, _ := f.Get(key)
	return util.ParseBool(v)
}

func (f *fakeSettings) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.m[key] = value
	return nil
}

func (f *fakeSettings) ToMap() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := make(map[string]string, len(f.m))
	for k, v := range f.m {
		if k != "password" {
			m[k] = v
		}
	}
	return m
}

func (f *fakeSettings) Save(form url.Values) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for k := range form {
		if _, ok := f.m[k]; ok {
			f.m[k] = form.Get(k)
		}
	}
	return nil
}

func (f *fakeSettings) Load() global.Settings {
	m := f.ToMap()
	return global.Settings{
		DeviceID:         m["deviceid"],
		DDNS:             m["ddns"],
		UseAPIKey:        util.ParseBool(m["auth_use_apikey"]),
		APIKey:           m["auth_apikey"],
		AutoScan:         util.ParseBool(m["auto_scan"]),
		AutoScanInterval: m["auto_scan_interval"],
		ProxyURL:         m["proxy_url"],
	}
}

// fakeChannels answers from memory; err makes every call fail.
type fakeChannels struct {
	channels []model.Channel
	err      error

	savedPayload string
	fixedDevice  string
}

func (f *fakeChannels) ChannelList(onlyUse bool) ([]model.Channel, error) {
	if f.err != nil {
		return nil, f.err
	}
	list := []model.Channel{}
	for _, ch := range f.channels {
		if !onlyUse || ch.Use {
			list = append(list, ch)
		}
	}
	return list, nil
}

func (f *fakeChannels) GroupSort() ([]service.Group, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []service.Group{{GroupName: "etc", List: f.channels}}, nil
}

func (f *fakeChannels) Save(payload string) error {
	if f.err != nil {
		return f.err
	}
	f.savedPayload = payload
	return nil
}

func (f *fakeChannels) Delete(id uint) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for i, ch := range f.channels {
		if ch.ID == id {
			f.channels = append(f.channels[:i], f.channels[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeChannels) MatchForEpgName(id uint, name string) (model.Channel, error) {
	if f.err != nil {
		return model.Channel{}, f.err
	}
	for i := range f.channels {
		if f.channels[i].ID == id {
			f.channels[i].ForEpgName = name
			return f.channels[i], nil
		}
	}
	return model.Channel{}, service.ErrChannelNotFound
}

func (f *fakeChannels) IPFix(ctx context.Context, deviceID string) (*service.IPFixResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.fixedDevice = deviceID
	return &service.IPFixResult{Ret: "success", Count: len(f.channels)}, nil
}

func (f *fakeChannels) M3U() (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "#EXTM3U\n", nil
}

func (f *fakeChannels) Groups() ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []string{"news"}, nil
}

func (f *fakeChannels) ScanStatus() service.StatusInfo {
	return service.StatusInfo{Status: service.Ok, Msg: "3 channels, 0 new"}
}

func (f *fakeChannels) LoadData(ctx context.Context) (*service.LoadResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &service.LoadResult{Ret: "success", Total: len(f.channels)}, nil
}
