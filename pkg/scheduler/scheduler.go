// Package scheduler drives the daily digest pipeline over all active subscriptions
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/demajh/research-listener/pkg/domain"
)

//go:generate moq -out mocks/subscription_source.go -pkg mocks -skip-ensure -fmt goimports . SubscriptionSource
//go:generate moq -out mocks/runner.go -pkg mocks -skip-ensure -fmt goimports . Runner

// ErrStopped is returned by Trigger after the scheduler was stopped
var ErrStopped = errors.New("scheduler is stopped")

// SubscriptionSource lists subscriptions
type SubscriptionSource interface {
	List(ctx context.Context, activeOnly bool) ([]domain.Subscription, error)
}

// Runner performs one sweep over subscriptions
type Runner interface {
	Run(ctx context.Context, subs []domain.Subscription) (domain.RunReport, error)
}

// Config holds scheduler configuration
type Config struct {
	DailyAt string           // UTC time of day, HH:MM
	Now     func() time.Time // defaults to time.Now
}

// Scheduler runs the sweep every day at a fixed UTC time and on demand
type Scheduler struct {
	source SubscriptionSource
	runner Runner
	hour   int
	minute int
	now    func() time.Time

	busy   atomic.Bool
	mu     sync.RWMutex
	last   *domain.RunReport
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a new scheduler instance
func NewScheduler(source SubscriptionSource, runner Runner, cfg Config) (*Scheduler, error) {
	if cfg.DailyAt == "" {
		cfg.DailyAt = "08:00"
	}
	t, err := time.Parse("15:04", cfg.DailyAt)
	if err != nil {
		return nil, fmt.Errorf("invalid daily time %q: %w", cfg.DailyAt, err)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		source: source,
		runner: runner,
		hour:   t.Hour(),
		minute: t.Minute(),
		now:    cfg.Now,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// Start begins the daily loop
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(ctx)
	loopCtx := s.ctx
	s.mu.Unlock()

	s.wg.Add(1)
	go s.dailyWorker(loopCtx)

	lgr.Printf("[INFO] scheduler started, daily run at %02d:%02d UTC, next at %s", s.hour, s.minute,
		NextRun(s.now(), s.hour, s.minute).Format(time.RFC3339))
}

// Stop gracefully stops the scheduler and waits for a running sweep
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	// under the lock Trigger either registered its sweep already or sees the canceled context
	s.mu.Lock()
	s.cancel()
	s.mu.Unlock()
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// dailyWorker sleeps until the next daily time and runs the sweep
func (s *Scheduler) dailyWorker(ctx context.Context) {
	defer s.wg.Done()

	for {
		next := NextRun(s.now(), s.hour, s.minute)
		timer := time.NewTimer(next.Sub(s.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			if _, err := s.RunNow(ctx); err != nil {
				lgr.Printf("[WARN] scheduled run: %v", err)
			}
		}
	}
}

// RunNow performs one sweep over active subscriptions and waits for it
func (s *Scheduler) RunNow(ctx context.Context) (domain.RunReport, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return domain.RunReport{}, ErrRunInProgress
	}
	defer s.busy.Store(false)
	return s.sweep(ctx)
}

// Trigger starts a sweep in background. It returns ErrRunInProgress if one is already running
// and ErrStopped once Stop was called.
func (s *Scheduler) Trigger() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx := s.ctx
	if ctx.Err() != nil {
		return ErrStopped
	}
	if !s.busy.CompareAndSwap(false, true) {
		return ErrRunInProgress
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.busy.Store(false)
		if _, err := s.sweep(ctx); err != nil {
			lgr.Printf("[WARN] triggered run: %v", err)
		}
	}()
	return nil
}

// Running reports whether a sweep is in progress
func (s *Scheduler) Running() bool {
	return s.busy.Load()
}

// LastReport returns the report of the latest finished sweep
func (s *Scheduler) LastReport() (domain.RunReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return domain.RunReport{}, false
	}
	return *s.last, true
}

func (s *Scheduler) sweep(ctx context.Context) (domain.RunReport, error) {
	subs, err := s.source.List(ctx, true)
	if err != nil {
		return domain.RunReport{}, fmt.Errorf("list subscriptions: %w", err)
	}

	report, err := s.runner.Run(ctx, subs)
	if report.ID != "" {
		s.mu.Lock()
		s.last = &report
		s.mu.Unlock()
	}
	return report, err
}

// NextRun returns the first moment strictly after now at hour:minute UTC
func NextRun(now time.Time, hour, minute int) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
