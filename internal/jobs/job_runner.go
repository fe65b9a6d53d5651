package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clublink/internal/config"
	"clublink/internal/lock"
	"clublink/internal/logger"
	"clublink/internal/repository"
	"clublink/internal/security"
	"clublink/internal/service"
)

const (
	JobNotifyWaitlist    = "notify-waitlist"
	JobExpireInvitations = "expire-invitations"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	repos    repository.Repositories
	services *Services
	tokens   security.TokenManager
	locker   lock.Locker
	config   *config.Config
	now      func() time.Time
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Email      service.EmailService
	Membership service.MembershipService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(repos repository.Repositories, services *Services, tokens security.TokenManager, locker lock.Locker, cfg *config.Config) *JobRunner {
	return &JobRunner{
		repos:    repos,
		services: services,
		tokens:   tokens,
		locker:   locker,
		config:   cfg,
		now:      time.Now,
	}
}

// RunJob runs the named job once under the run lock. It is what both the scheduler and the
// cronjob command invoke.
func (jr *JobRunner) RunJob(name string) error {
	switch name {
	case JobNotifyWaitlist:
		return jr.runWithRecovery(name, func(ctx context.Context) error {
			stats, err := jr.NotifyWaitlist(ctx)
			if stats != nil {
				logger.Info("Waitlist run summary", "pending", stats.Pending, "invited", stats.Invited,
					"outstanding", stats.Outstanding, "lapsed", stats.Lapsed, "skipped", stats.Skipped, "failed", stats.Failed)
			}
			return err
		})
	case JobExpireInvitations:
		return jr.runWithRecovery(name, func(ctx context.Context) error {
			expired, err := jr.ExpireLapsedInvitations(ctx)
			logger.Info("Lapsed invitation sweep summary", "expired", expired)
			return err
		})
	default:
		return fmt.Errorf("unknown job %q", name)
	}
}

// RunAllDailyJobs runs all daily jobs (for manual execution)
func (jr *JobRunner) RunAllDailyJobs() error {
	return errors.Join(
		jr.RunJob(JobExpireInvitations),
		jr.RunJob(JobNotifyWaitlist),
	)
}

// runWithRecovery wraps job execution with the run lock and panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) error) (err error) {
	ctx := context.Background()

	release, err := jr.locker.Acquire(ctx, jobName, jr.config.Waitlist.LockTTL)
	if errors.Is(err, lock.ErrNotAcquired) {
		logger.Info("Job already running elsewhere, skipping", "job", jobName)
		return nil
	}
	if err != nil {
		logger.Error("Failed to acquire job lock", "job", jobName, "error", err)
		return err
	}
	defer func() {
		if relErr := release(ctx); relErr != nil {
			logger.Warn("Failed to release job lock", "job", jobName, "error", relErr)
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
			err = fmt.Errorf("job %s panicked: %v", jobName, r)
		}
	}()

	start := time.Now()
	logger.Info("Starting job", "job", jobName)
	if err := jobFunc(ctx); err != nil {
		logger.Error("Job failed", "job", jobName, "error", err, "duration", time.Since(start))
		return err
	}
	logger.Info("Job completed", "job", jobName, "duration", time.Since(start))
	return nil
}

// Config returns the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}
