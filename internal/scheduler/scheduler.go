package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/bastanley1211/fertilitytracker/internal/cycle"
)

// Scheduler periodically flushes the reading store to its repository so
// a crash loses at most one interval of direct entries.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *cycle.Service
	interval  time.Duration
}

// New creates a new Scheduler.
func New(service *cycle.Service, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		interval:  interval,
	}
}

// Start schedules the periodic autosave job and starts the underlying
// scheduler.
func (s *Scheduler) Start() error {
	interval := s.interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	_, err := s.scheduler.Every(interval).Do(func() {
		if err := s.service.Flush(); err != nil {
			log.Printf("scheduler: autosave failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
