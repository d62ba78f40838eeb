package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/snowie2000/hdhomerun/global"
)

const tunerCount = 20

func newDiscover(ddns string) Discover {
	return Discover{
		FriendlyName:    "HDHomeRun CONNECT",
		ModelNumber:     "HDHR4-2US",
		FirmwareName:    "hdhomerun4_atsc",
		FirmwareVersion: "20190621",
		DeviceID:        "104E8010",
		DeviceAuth:      "UF4CFfWQh05c3jROcArmAZaf",
		BaseURL:         fmt.Sprintf("%s/%s/proxy", ddns, global.PackageName),
		LineupURL:       fmt.Sprintf("%s/%s/proxy/lineup.json", ddns, global.PackageName),
		TunerCount:      tunerCount,
	}
}

// Proxy answers the discovery calls a DVR makes against a network tuner.
func (d *Dispatcher) Proxy(c *gin.Context) {
	sub := c.Param("sub")
	d.Logger.Printf("[%s] proxy %s", global.PackageName, sub)
	countRequest("proxy", sub)
	switch sub {
	case "discover.json":
		c.PureJSON(http.StatusOK, newDiscover(d.Settings.Load().DDNS))
	case "lineup_status.json":
		c.JSON(http.StatusOK, LineupStatus{
			ScanInProgress: 0,
			ScanPossible:   1,
			Source:         "Cable",
			SourceList:     []string{"Antenna", "Cable"},
		})
	case "lineup.json":
		channels, err := d.Channels.ChannelList(true)
		if err != nil {
			d.fail("proxy", sub, err)
			c.Status(http.StatusOK)
			return
		}
		lineup := make([]LineupEntry, 0, len(channels))
		for _, ch := range channels {
			lineup = append(lineup, LineupEntry{
				GuideNumber: strconv.Itoa(ch.ChNumber),
				GuideName:   ch.ScanName,
				URL:         ch.URL,
			})
		}
		lineupGauge.Set(float64(len(lineup)))
		c.PureJSON(http.StatusOK, lineup)
	default:
		c.Status(http.StatusOK)
	}
}
