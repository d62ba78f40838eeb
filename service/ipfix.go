package service

import (
	"context"
	"log"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/snowie2000/hdhomerun/device"
	"github.com/snowie2000/hdhomerun/global"
)

// authority matches the host and optional port of an absolute url.
var authority = regexp2.MustCompile(`(?<=^[A-Za-z][A-Za-z0-9+.\-]*://)(?<host>\[[^\]/?#]*\]|[^/?#:]+)(?<port>:\d*)?(?=[/?#]|$)`, regexp2.None)

type IPFixResult struct {
	Ret   string      `json:"ret"`
	Count int         `json:"count"`
	Scan  *LoadResult `json:"scan,omitempty"`
}

// hasPort reports whether host (host, host:port, [v6] or [v6]:port) names a port.
func hasPort(host string) bool {
	return strings.LastIndex(host, ":") > strings.LastIndex(host, "]")
}

// replaceHost points raw at host. A host without a port keeps the port raw had.
func replaceHost(raw, host string) string {
	out, err := authority.ReplaceFunc(raw, func(m regexp2.Match) string {
		if hasPort(host) {
			return host
		}
		return host + m.GroupByName("port").String()
	}, -1, 1)
	if err != nil {
		return raw
	}
	return out
}

// IPFix points every channel at the tuner now reachable at deviceID and then
// rescans it. A failed rescan is logged but does not fail the fix.
func IPFix(ctx context.Context, deviceID string) (*IPFixResult, error) {
	scanLock.Lock()
	defer scanLock.Unlock()

	host := device.Host(deviceID)
	if host == "" {
		return nil, device.ErrNoDevice
	}
	channels, err := GetAllChannel(false)
	if err != nil {
		return nil, err
	}
	count := 0
	for i := range channels {
		ch := &channels[i]
		scanURL := replaceHost(ch.ScanURL, host)
		streamURL := replaceHost(ch.URL, host)
		if scanURL == ch.ScanURL && streamURL == ch.URL {
			continue
		}
		ch.ScanURL = scanURL
		ch.URL = streamURL
		if err := SaveChannel(ch); err != nil {
			return nil, err
		}
		count++
	}
	global.LineupCache.Flush()

	result := &IPFixResult{Ret: "success", Count: count}
	if scan, err := LoadData(ctx); err != nil {
		log.Println("[ipfix] rescan failed:", err)
	} else {
		result.Scan = scan
	}
	return result, nil
}
