// Package retention clears reservations for days of the current week that
// have already passed. Reservations are keyed by weekday only, so a day's
// rows must be gone before the same weekday comes round again.
package retention

import (
	"context"
	"sync"
	"time"

	"classbook/pkg/clock"
	"classbook/pkg/logger"
	"classbook/pkg/model"
)

type Deleter interface {
	DeleteByDays(ctx context.Context, days []model.Weekday) (int64, error)
}

type Job struct {
	store Deleter
	clock clock.Clock
	log   *logger.Logger

	// wait returns a channel that fires after d; replaced in tests.
	wait func(d time.Duration) <-chan time.Time

	mu      sync.Mutex
	stopCh  chan struct{}
	done    chan struct{}
	running bool
}

func NewJob(store Deleter, clk clock.Clock, log *logger.Logger) *Job {
	return &Job{
		store: store,
		clock: clk,
		log:   log.Component("retention"),
		wait:  time.After,
	}
}

// PastDays returns the weekdays from Sunday up to, but excluding, now's
// weekday. On Sunday the week has just rolled over and Saturday is the day
// that has passed.
func PastDays(now time.Time) []model.Weekday {
	if now.Weekday() == time.Sunday {
		return []model.Weekday{model.Saturday}
	}
	return append([]model.Weekday(nil), model.Weekdays[:now.Weekday()]...)
}

// UntilNextMidnight is the time from now to the next local midnight.
func UntilNextMidnight(now time.Time) time.Duration {
	y, m, d := now.Date()
	next := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
	return next.Sub(now)
}

// RunOnce deletes every reservation whose day has passed this week.
func (j *Job) RunOnce(ctx context.Context) (int64, error) {
	now := j.clock.Now()
	days := PastDays(now)
	deleted, err := j.store.DeleteByDays(ctx, days)
	if err != nil {
		j.log.Error("Failed to clear past reservations", "days", days, "error", err)
		return 0, err
	}

	j.log.Info("Cleared past reservations", "days", days, "deleted", deleted)
	return deleted, nil
}

// Start runs once immediately and then after every local midnight.
func (j *Job) Start(ctx context.Context) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.running {
		return
	}
	j.running = true
	j.stopCh = make(chan struct{})
	j.done = make(chan struct{})

	go j.run(ctx, j.stopCh, j.done)
	j.log.Info("Retention job started")
}

func (j *Job) Stop() {
	j.mu.Lock()
	if !j.running {
		j.mu.Unlock()
		return
	}
	j.running = false
	close(j.stopCh)
	done := j.done
	j.mu.Unlock()

	<-done
	j.log.Info("Retention job stopped")
}

func (j *Job) run(ctx context.Context, stopCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	for {
		_, _ = j.RunOnce(ctx)

		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case <-j.wait(UntilNextMidnight(j.clock.Now())):
		}
	}
}
