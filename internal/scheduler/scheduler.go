package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/terraincognita07/skycast/internal/services"
)

// Scheduler runs the periodic snapshot retention job.
type Scheduler struct {
	scheduler *gocron.Scheduler
	retention *services.RetentionService
	interval  time.Duration
}

func New(retention *services.RetentionService, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		retention: retention,
		interval:  interval,
	}
}

// Start schedules the prune job and starts the underlying scheduler. With
// retention disabled nothing is scheduled and the snapshot cache grows
// unbounded, matching the default append-only behavior.
func (s *Scheduler) Start() error {
	if !s.retention.Enabled() {
		log.Println("scheduler: snapshot retention disabled; nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = time.Hour
	}

	_, err := s.scheduler.Every(interval).Do(func() {
		removed, err := s.retention.PruneExpired()
		if err != nil {
			log.Printf("scheduler: snapshot prune failed: %v", err)
			return
		}
		if removed > 0 {
			log.Printf("scheduler: pruned %d expired snapshots", removed)
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
