// Package scheduler wraps gocron for the daemon's periodic runs.
package scheduler

import (
	"fmt"
	"log"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler manages cron-triggered tasks.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *log.Logger
}

// New creates a new scheduler instance.
func New(logger *log.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	return &Scheduler{scheduler: s, logger: logger}, nil
}

// ScheduleCron registers task under a standard five-field cron expression.
// Returns the job ID for later management.
func (s *Scheduler) ScheduleCron(expr, name string, task func()) (string, error) {
	job, err := s.scheduler.NewJob(
		gocron.CronJob(expr, false),
		gocron.NewTask(task),
		gocron.WithName(name),
	)
	if err != nil {
		return "", fmt.Errorf("failed to schedule %q with cron %q: %w", name, expr, err)
	}
	s.logger.Printf("Scheduler: registered job %s with cron %q\n", name, expr)
	return job.ID().String(), nil
}

// Start begins the scheduler.
func (s *Scheduler) Start() {
	s.logger.Println("Scheduler: starting")
	s.scheduler.Start()
}

// Shutdown gracefully stops the scheduler, waiting for a running job.
func (s *Scheduler) Shutdown() error {
	s.logger.Println("Scheduler: stopping")
	return s.scheduler.Shutdown()
}
