package service

import (
	"context"
	"fmt"
	"log"

	greetrant "github.com/LgoLgo/geentrant"
	"github.com/snowie2000/hdhomerun/device"
	"github.com/snowie2000/hdhomerun/global"
	"github.com/snowie2000/hdhomerun/model"
	"github.com/snowie2000/hdhomerun/syncx"
	"github.com/snowie2000/hdhomerun/util"
)

// scanLock serializes every operation that rewrites the channel table in bulk.
// IPFix re-enters it through LoadData.
var scanLock = &greetrant.RecursiveMutex{}

type LoadResult struct {
	Ret   string `json:"ret"`
	Total int    `json:"total"`
	Added int    `json:"added"`
}

func fetchLineup(ctx context.Context, settings global.Settings) ([]device.LineupEntry, error) {
	host := device.Host(settings.DeviceID)
	if cached, ok := global.LineupCache.Get(host); ok {
		return cached.([]device.LineupEntry), nil
	}
	client, err := device.New(settings.DeviceID, settings.ProxyURL)
	if err != nil {
		return nil, err
	}
	lineup, err := client.Lineup(ctx)
	if err != nil {
		return nil, err
	}
	global.LineupCache.SetDefault(host, lineup)
	return lineup, nil
}

// LoadData merges the lineup of the configured tuner into the channel table.
// Channels are matched by guide number; new ones are added enabled, known ones
// only get their scan name and scan url refreshed.
func LoadData(ctx context.Context) (*LoadResult, error) {
	scanLock.Lock()
	defer scanLock.Unlock()

	settings := global.LoadSettings()
	host := device.Host(settings.DeviceID)
	lineup, err := fetchLineup(ctx, settings)
	if err != nil {
		UpdateStatus(host, Error, err.Error())
		return nil, fmt.Errorf("load lineup: %w", err)
	}

	existing, err := GetAllChannel(false)
	if err != nil {
		return nil, err
	}
	known := syncx.NewHashedSlice[*model.Channel]()
	taken := make(map[int]bool, len(existing))
	for i := range existing {
		taken[existing[i].ChNumber] = true
		if err := known.Add(&existing[i]); err != nil {
			log.Println("[scan] duplicate guide number in channel table:", existing[i].ScanVID)
		}
	}
	next, err := nextChannelNumber()
	if err != nil {
		return nil, err
	}

	added := 0
	for _, entry := range lineup {
		probe := &model.Channel{ScanVID: entry.GuideNumber}
		if ch, ok := known.GetByDigest(probe.Digest()); ok {
			if ch.ScanName == entry.GuideName && ch.ScanURL == entry.URL {
				continue
			}
			ch.ScanName = entry.GuideName
			ch.ScanURL = entry.URL
			if err := SaveChannel(ch); err != nil {
				return nil, err
			}
			continue
		}

		number, ok := util.String2Int(entry.GuideNumber)
		if !ok || number <= 0 || taken[number] {
			number = next
		}
		if number >= next {
			next = number + 1
		}
		ch := &model.Channel{
			Use:      true,
			ChNumber: number,
			ScanVID:  entry.GuideNumber,
			ScanName: entry.GuideName,
			ScanURL:  entry.URL,
			URL:      entry.URL,
		}
		if err := global.DB.Create(ch).Error; err != nil {
			return nil, err
		}
		known.Add(ch)
		taken[number] = true
		added++
	}
	global.M3UCache.Flush()

	UpdateStatus(host, Ok, fmt.Sprintf("%d channels, %d new", len(lineup), added))
	log.Printf("[scan] %s: %d channels, %d new\n", host, len(lineup), added)
	return &LoadResult{Ret: "success", Total: len(lineup), Added: added}, nil
}
