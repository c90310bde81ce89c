package scheduler

import (
	"context"
	"sync"
	"time"

	"classbook/pkg/clock"
	"classbook/pkg/logger"
)

// LockCoordinator hands out short-lived soft locks on classrooms. A lock is
// never released explicitly: it lapses at its TTL and the sweeper clears the
// field afterwards.
type LockCoordinator struct {
	store LockStore
	clock clock.Clock
	ttl   time.Duration
}

func NewLockCoordinator(store LockStore, clk clock.Clock, ttl time.Duration) *LockCoordinator {
	return &LockCoordinator{
		store: store,
		clock: clk,
		ttl:   ttl,
	}
}

// TryLock sets locked_until = now + ttl if the classroom is available and
// not currently locked. A false result is the normal "busy" answer.
func (c *LockCoordinator) TryLock(ctx context.Context, resourceID string) (bool, error) {
	now := c.clock.Now()
	return c.store.ConditionalLock(ctx, resourceID, now, now.Add(c.ttl))
}

func (c *LockCoordinator) SweepExpired(ctx context.Context) (int64, error) {
	return c.SweepExpiredAt(ctx, c.clock.Now())
}

// SweepExpiredAt clears every lock whose deadline is at or before now.
func (c *LockCoordinator) SweepExpiredAt(ctx context.Context, now time.Time) (int64, error) {
	return c.store.ClearExpiredLocks(ctx, now)
}

func (c *LockCoordinator) TTL() time.Duration {
	return c.ttl
}

// Sweeper runs SweepExpired on a fixed interval until stopped.
type Sweeper struct {
	locks    *LockCoordinator
	interval time.Duration
	log      *logger.Logger

	mu      sync.Mutex
	stopCh  chan struct{}
	done    chan struct{}
	running bool
}

func NewSweeper(locks *LockCoordinator, interval time.Duration, log *logger.Logger) *Sweeper {
	return &Sweeper{
		locks:    locks,
		interval: interval,
		log:      log.Component("lock-sweeper"),
	}
}

func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.done = make(chan struct{})

	go s.run(ctx, s.stopCh, s.done)
	s.log.Info("Lock sweeper started", "interval", s.interval)
}

// Stop halts the loop and waits for an in-progress sweep to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	done := s.done
	s.mu.Unlock()

	<-done
	s.log.Info("Lock sweeper stopped")
}

func (s *Sweeper) run(ctx context.Context, stopCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce runs one sweep and logs the result. Errors are logged and the
// next tick tries again.
func (s *Sweeper) SweepOnce(ctx context.Context) {
	cleared, err := s.locks.SweepExpired(ctx)
	if err != nil {
		s.log.Error("Failed to release expired locks", "error", err)
		return
	}
	if cleared > 0 {
		s.log.Info("Released expired locks", "count", cleared)
	} else {
		s.log.Debug("No expired locks to release")
	}
}
