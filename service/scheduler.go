package service

import (
	"context"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/snowie2000/hdhomerun/global"
)

// Scheduler rescans the tuner periodically while auto_scan is on.
type Scheduler struct {
	mu    sync.Mutex
	cron  *cron.Cron
	entry cron.EntryID
}

func NewScheduler() *Scheduler {
	s := &Scheduler{cron: cron.New()}
	s.cron.Start()
	return s
}

// Reload re-reads auto_scan and auto_scan_interval and replaces the job.
func (s *Scheduler) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entry != 0 {
		s.cron.Remove(s.entry)
		s.entry = 0
	}
	settings := global.LoadSettings()
	if !settings.AutoScan {
		return nil
	}
	id, err := s.cron.AddFunc(settings.AutoScanInterval, func() {
		if _, err := LoadData(context.Background()); err != nil {
			log.Println("[cron] scan failed:", err)
		}
	})
	if err != nil {
		return err
	}
	s.entry = id
	log.Println("[cron] auto scan scheduled", settings.AutoScanInterval)
	return nil
}

func (s *Scheduler) Scheduled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entry != 0
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
