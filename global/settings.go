package global

import "net/url"

// Settings is a typed snapshot of the settings table.
type Settings struct {
	DeviceID         string
	DDNS             string
	UseAPIKey        bool
	APIKey           string
	AutoScan         bool
	AutoScanInterval string
	ProxyURL         string
}

func LoadSettings() Settings {
	get := func(key string) string {
		v, _ := GetConfig(key)
		return v
	}
	return Settings{
		DeviceID:         get("deviceid"),
		DDNS:             get("ddns"),
		UseAPIKey:        GetBoolConfig("auth_use_apikey"),
		APIKey:           get("auth_apikey"),
		AutoScan:         GetBoolConfig("auto_scan"),
		AutoScanInterval: get("auto_scan_interval"),
		ProxyURL:         get("proxy_url"),
	}
}

// WithAPIKey appends the api key query to link when api key auth is enabled.
func (s Settings) WithAPIKey(link string) string {
	if !s.UseAPIKey {
		return link
	}
	return link + "?apikey=" + url.QueryEscape(s.APIKey)
}
