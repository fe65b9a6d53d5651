package scheduler

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"clublink/internal/jobs"
	"clublink/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron    *cron.Cron
	jobs    *jobs.JobRunner
	mu      sync.Mutex
	running bool
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) (*Scheduler, error) {
	cronLogger := cron.PrintfLogger(logger.StdLogger(slog.LevelInfo))

	// Create cron with UTC timezone and seconds precision. A tick that fires while the
	// previous run of the same job is still going is skipped.
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() error {
	cfg := s.jobs.Config().Scheduler

	schedule := []struct {
		name string
		spec string
	}{
		{jobs.JobExpireInvitations, cfg.ExpireInvitations},
		{jobs.JobNotifyWaitlist, cfg.NotifyWaitlist},
	}

	for _, job := range schedule {
		name := job.name
		if _, err := s.cron.AddFunc(job.spec, func() { _ = s.jobs.RunJob(name) }); err != nil {
			logger.Error("Failed to register job", "job", name, "spec", job.spec, "error", err)
			return fmt.Errorf("failed to register %s job: %w", name, err)
		}
		logger.Debug("Registered job", "job", name, "spec", job.spec)
	}

	logger.Info("All cron jobs registered successfully", "count", len(schedule))
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	s.running = true
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler, waiting for running jobs to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if the scheduler has been started and not stopped
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRuns reports the next activation time of each registered job
func (s *Scheduler) NextRuns() []time.Time {
	entries := s.cron.Entries()
	next := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		if e.Next.IsZero() {
			next = append(next, e.Schedule.Next(time.Now().UTC()))
			continue
		}
		next = append(next, e.Next)
	}
	return next
}
