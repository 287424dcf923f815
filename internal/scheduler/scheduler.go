// Package scheduler periodically refreshes the saved locations through the
// request gateway, keeping the cache warm for the panel.
package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/Apolar-scc/Hava-Durumu/internal/locations"
	"github.com/Apolar-scc/Hava-Durumu/internal/weather"
)

// Scheduler drives background refreshes of the user's location list.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	list      *locations.Manager
	interval  time.Duration
}

// New creates a Scheduler. interval <= 0 means the scheduler stays idle.
func New(list *locations.Manager, interval time.Duration, service *weather.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		list:      list,
		interval:  interval,
	}
}

// Start schedules the periodic refresh job and starts the underlying
// scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: refresh disabled; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(s.refreshAll)
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

// refreshAll enqueues one fetch per saved location. Replies are drained so a
// stale entry does not block the next tick; results land in the cache either
// way.
func (s *Scheduler) refreshAll() {
	names := s.list.List()
	if len(names) == 0 {
		return
	}

	log.Printf("scheduler: refreshing %d locations", len(names))
	replies := make([]<-chan *weather.Report, 0, len(names))
	for _, name := range names {
		replies = append(replies, s.service.RequestWeather(name))
	}
	for i, reply := range replies {
		if report := <-reply; report == nil {
			log.Printf("scheduler: no data for %q", names[i])
		}
	}
}
