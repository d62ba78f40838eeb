package handler

import (
	"fmt"
	"log"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/snowie2000/hdhomerun/global"
)

// Dispatcher serves every route under the plugin prefix. Each branch is its own
// failure boundary: errors are logged and answered with 200 and an empty body
// (or "fail" for setting_save), never propagated.
type Dispatcher struct {
	Settings SettingStore
	Channels ChannelLogic
	Logger   *log.Logger
	// DataDir confines read_data; LogFile is tailed by the log page.
	DataDir string
	LogFile string
}

func NewDispatcher(settings SettingStore, channels ChannelLogic, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Dispatcher{
		Settings: settings,
		Channels: channels,
		Logger:   logger,
	}
}

const traceDepth = 8

func (d *Dispatcher) fail(route, sub string, err error) {
	d.Logger.Printf("[%s] %s %s failed: %v\n%s", global.PackageName, route, sub, err, callTrace(2))
	failureCounter.WithLabelValues(route, metricSub(sub)).Inc()
}

// callTrace lists the callers above skip as "func (file.go:line)", innermost
// first, stopping at the gin engine.
func callTrace(skip int) string {
	pcs := make([]uintptr, traceDepth)
	n := runtime.Callers(skip+1, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	var b strings.Builder
	for {
		frame, more := frames.Next()
		if strings.Contains(frame.Function, "gin-gonic/gin") {
			break
		}
		fmt.Fprintf(&b, "\tat %s (%s:%d)\n", frame.Function, filepath.Base(frame.File), frame.Line)
		if !more {
			break
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
