// Package scheduler runs background maintenance for the reconciliation run journal.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// RunPurger deletes journal entries older than a cutoff
type RunPurger interface {
	DeleteStartedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// RetentionConfig holds configuration for the journal retention job
type RetentionConfig struct {
	// Retention is how long runs are kept
	Retention time.Duration

	// DailyHour is the local hour the purge runs
	DailyHour int

	// CheckInterval is how often the clock is checked
	CheckInterval time.Duration

	// PurgeTimeout bounds a single purge
	PurgeTimeout time.Duration
}

// DefaultRetentionConfig returns default retention configuration
func DefaultRetentionConfig() RetentionConfig {
	return RetentionConfig{
		Retention:     30 * 24 * time.Hour,
		DailyHour:     3,
		CheckInterval: time.Minute,
		PurgeTimeout:  5 * time.Minute,
	}
}

// Validate checks the configuration
func (c RetentionConfig) Validate() error {
	if c.Retention <= 0 || c.CheckInterval <= 0 || c.PurgeTimeout <= 0 {
		return ErrInvalidConfig
	}
	if c.DailyHour < 0 || c.DailyHour > 23 {
		return ErrInvalidConfig
	}
	return nil
}

// RetentionJob purges expired reconciliation runs once a day
type RetentionJob struct {
	config RetentionConfig
	purger RunPurger
	logger *zap.Logger
	now    func() time.Time

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	purging     bool
	lastRunDate string
}

// NewRetentionJob creates a new retention job
func NewRetentionJob(config RetentionConfig, purger RunPurger, logger *zap.Logger) (*RetentionJob, error) {
	return newRetentionJob(config, purger, logger, time.Now)
}

func newRetentionJob(config RetentionConfig, purger RunPurger, logger *zap.Logger, now func() time.Time) (*RetentionJob, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RetentionJob{
		config: config,
		purger: purger,
		logger: logger,
		now:    now,
	}, nil
}

// Start starts the check loop
func (j *RetentionJob) Start(ctx context.Context) error {
	j.mu.Lock()
	if j.isRunning {
		j.mu.Unlock()
		return nil
	}
	j.isRunning = true
	j.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	j.cancel = cancel

	j.wg.Add(1)
	go j.runLoop(ctx)

	j.logger.Info("Journal retention started",
		zap.Duration("retention", j.config.Retention),
		zap.Int("daily_hour", j.config.DailyHour),
		zap.Duration("check_interval", j.config.CheckInterval),
	)
	return nil
}

// Stop stops the check loop and waits for an in-flight purge
func (j *RetentionJob) Stop(ctx context.Context) error {
	j.mu.Lock()
	if !j.isRunning {
		j.mu.Unlock()
		return nil
	}
	j.isRunning = false
	j.mu.Unlock()

	if j.cancel != nil {
		j.cancel()
	}

	done := make(chan struct{})
	go func() {
		j.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		j.logger.Info("Journal retention stopped")
		return nil
	case <-ctx.Done():
		j.logger.Warn("Journal retention stop timed out")
		return ctx.Err()
	}
}

func (j *RetentionJob) runLoop(ctx context.Context) {
	defer j.wg.Done()

	ticker := time.NewTicker(j.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.checkAndPurge(ctx)
		}
	}
}

// checkAndPurge purges at most once per calendar day, during DailyHour
func (j *RetentionJob) checkAndPurge(ctx context.Context) {
	now := j.now()
	today := now.Format("2006-01-02")

	j.mu.Lock()
	if j.lastRunDate == today || now.Hour() != j.config.DailyHour {
		j.mu.Unlock()
		return
	}
	j.lastRunDate = today
	j.mu.Unlock()

	if _, err := j.Purge(ctx); err != nil {
		j.logger.Error("Journal purge failed", zap.Error(err))
	}
}

// Purge deletes runs started before now minus the retention window
func (j *RetentionJob) Purge(ctx context.Context) (int64, error) {
	j.mu.Lock()
	if j.purging {
		j.mu.Unlock()
		return 0, ErrPurgeInProgress
	}
	j.purging = true
	j.mu.Unlock()
	defer func() {
		j.mu.Lock()
		j.purging = false
		j.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(ctx, j.config.PurgeTimeout)
	defer cancel()

	cutoff := j.now().Add(-j.config.Retention)
	deleted, err := j.purger.DeleteStartedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	j.logger.Info("Journal purged",
		zap.Time("cutoff", cutoff),
		zap.Int64("deleted", deleted),
	)
	return deleted, nil
}
