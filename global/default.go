package global

import (
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/snowie2000/hdhomerun/syncx"
)

// PackageName is the URL prefix every plugin route lives under.
const PackageName = "hdhomerun"

var defaultConfigValue = map[string]string{
	"deviceid":           "",
	"ddns":               "http://127.0.0.1:9000",
	"auth_use_apikey":    "False",
	"auth_apikey":        "",
	"password":           "password",
	"auto_scan":          "False",
	"auto_scan_interval": "@every 6h",
	"proxy_url":          "",
}

var (
	HttpClientTimeout = 10 * time.Second
	ConfigCache       syncx.Map[string, string]
	LineupCache       = cache.New(time.Minute, 5*time.Minute)
	M3UCache          = cache.New(30*time.Second, time.Minute)
)
