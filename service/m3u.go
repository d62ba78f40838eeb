package service

import (
	"io"
	"strconv"

	"github.com/jamesnetherton/m3u"
	"github.com/snowie2000/hdhomerun/global"
)

const m3uCacheKey = "m3u"

// M3UGenerate renders the enabled channels as an extended M3U playlist.
func M3UGenerate() (string, error) {
	if cached, ok := global.M3UCache.Get(m3uCacheKey); ok {
		return cached.(string), nil
	}
	channels, err := GetAllChannel(true)
	if err != nil {
		return "", err
	}
	playlist := m3u.Playlist{Tracks: make([]m3u.Track, 0, len(channels))}
	for _, v := range channels {
		track := m3u.Track{
			Name:   v.ScanName,
			Length: -1,
			URI:    v.URL,
			Tags: []m3u.Tag{
				{Name: "tvg-id", Value: v.EpgName()},
				{Name: "tvg-name", Value: v.ScanName},
				{Name: "tvg-chno", Value: strconv.Itoa(v.ChNumber)},
			},
		}
		if v.Logo != "" {
			track.Tags = append(track.Tags, m3u.Tag{Name: "tvg-logo", Value: v.Logo})
		}
		if v.GroupName != "" {
			track.Tags = append(track.Tags, m3u.Tag{Name: "group-title", Value: v.GroupName})
		}
		playlist.Tracks = append(playlist.Tracks, track)
	}
	r, err := m3u.Marshall(playlist)
	if err != nil {
		return "", err
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	global.M3UCache.SetDefault(m3uCacheKey, string(content))
	return string(content), nil
}
