package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hdhomerun_requests_total",
		Help: "Requests dispatched, by route and sub.",
	}, []string{"route", "sub"})

	failureCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hdhomerun_failures_total",
		Help: "Requests whose delegated operation failed.",
	}, []string{"route", "sub"})

	lineupGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hdhomerun_lineup_channels",
		Help: "Channels in the last served lineup.json.",
	})
)

var knownSubs = map[string]bool{
	"setting": true, "channel": true, "log": true, "proxy": true,
	"setting_save": true, "read_data": true, "load_data": true, "load_db": true,
	"group_sort": true, "save": true, "match_for_epg_name": true, "delete": true, "ip_fix": true,
	"m3u": true, "discover.json": true, "lineup_status.json": true, "lineup.json": true,
}

// metricSub keeps label cardinality bounded.
func metricSub(sub string) string {
	if knownSubs[sub] {
		return sub
	}
	return "unknown"
}

func countRequest(route, sub string) {
	requestCounter.WithLabelValues(route, metricSub(sub)).Inc()
}

func init() {
	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(failureCounter)
	prometheus.MustRegister(lineupGauge)
}

func Metrics(c *gin.Context) {
	handler := promhttp.Handler()
	handler.ServeHTTP(c.Writer, c.Request)
}
