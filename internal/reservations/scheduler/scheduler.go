// Package scheduler admits classroom reservation requests through one
// priority queue per classroom and commits them under a short soft lock.
//
// A request moves Queued -> Checking -> one of Committed, Conflicted,
// LockDenied or TransientError. Within a classroom, requests are resolved in
// ascending priority score with ties broken by arrival order; drains of
// different classrooms run concurrently.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"classbook/pkg/clock"
	"classbook/pkg/logger"
	"classbook/pkg/model"
)

const DefaultLockTTL = 5 * time.Minute

type OverlapQuerier interface {
	QueryOverlaps(ctx context.Context, resourceID string, day model.Weekday, start, end string) ([]*model.Reservation, error)
}

type LockStore interface {
	ConditionalLock(ctx context.Context, resourceID string, now, until time.Time) (bool, error)
	ClearExpiredLocks(ctx context.Context, now time.Time) (int64, error)
}

// Store is the persistence boundary. Every method may fail with a
// transient I/O error, which is distinct from an empty result or a denied
// lock.
type Store interface {
	OverlapQuerier
	LockStore
	Insert(ctx context.Context, reservation *model.Reservation) error
}

type OutcomeStatus int

const (
	StatusCommitted OutcomeStatus = iota + 1
	StatusConflicted
	StatusLockDenied
	StatusTransientError
)

func (s OutcomeStatus) String() string {
	switch s {
	case StatusCommitted:
		return "committed"
	case StatusConflicted:
		return "conflicted"
	case StatusLockDenied:
		return "lock_denied"
	case StatusTransientError:
		return "transient_error"
	default:
		return "unknown"
	}
}

type Outcome struct {
	Status OutcomeStatus
	// Reservation is set when Status is StatusCommitted.
	Reservation *model.Reservation
	// ConflictsWith is the committed reservation that blocked the request.
	ConflictsWith *model.Reservation
	// Err carries the store failure for StatusTransientError.
	Err error
}

// Ticket is handed back by Enqueue and receives exactly one Outcome.
type Ticket struct {
	Request  *model.ReservationRequest
	done     chan Outcome
	resolved atomic.Bool
}

func (t *Ticket) resolve(out Outcome) {
	t.resolved.Store(true)
	t.done <- out
}

func newTicket(req *model.ReservationRequest) *Ticket {
	return &Ticket{Request: req, done: make(chan Outcome, 1)}
}

func (t *Ticket) Done() <-chan Outcome {
	return t.done
}

// Wait blocks until the request has been resolved.
func (t *Ticket) Wait() Outcome {
	return <-t.done
}

type Option func(*Scheduler)

func WithClock(clk clock.Clock) Option {
	return func(s *Scheduler) {
		if clk != nil {
			s.clock = clk
		}
	}
}

func WithLockTTL(ttl time.Duration) Option {
	return func(s *Scheduler) {
		if ttl > 0 {
			s.lockTTL = ttl
		}
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(s *Scheduler) {
		if log != nil {
			s.log = log
		}
	}
}

// Scheduler owns the per-classroom queues. Construct one per process and
// pass it to whatever submits requests.
type Scheduler struct {
	store     Store
	conflicts *ConflictDetector
	locks     *LockCoordinator
	clock     clock.Clock
	lockTTL   time.Duration
	log       *logger.Logger

	mu     sync.Mutex
	queues map[string]*resourceQueue
	seq    atomic.Uint64
}

func New(store Store, opts ...Option) *Scheduler {
	s := &Scheduler{
		store:   store,
		clock:   clock.NewSystem(),
		lockTTL: DefaultLockTTL,
		log:     logger.Discard(),
		queues:  make(map[string]*resourceQueue),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Component("scheduler")
	s.conflicts = NewConflictDetector(store)
	s.locks = NewLockCoordinator(store, s.clock, s.lockTTL)
	return s
}

func (s *Scheduler) Locks() *LockCoordinator {
	return s.locks
}

func (s *Scheduler) Conflicts() *ConflictDetector {
	return s.conflicts
}

// Submit prices the request if needed, queues it and returns its outcome.
// The caller drains its classroom only until its own request is resolved;
// requests still queued behind it belong to submitters that are themselves
// waiting to drain.
func (s *Scheduler) Submit(ctx context.Context, req *model.ReservationRequest) Outcome {
	if req.SubmittedAt.IsZero() {
		req.SubmittedAt = s.clock.Now()
	}
	if req.Priority == 0 {
		req.Priority = Priority(req.RequesterRole, req.ReservationType, req.SubmittedAt)
	}

	ticket := s.Enqueue(req)
	q := s.queueFor(req.ResourceID)

	select {
	case out := <-ticket.done:
		return out
	case q.slot <- struct{}{}:
	}
	s.drainUntil(context.WithoutCancel(ctx), q, ticket)
	<-q.slot

	return ticket.Wait()
}

// Enqueue places an already priced request in its classroom's queue without
// processing it. Capacity is unbounded.
func (s *Scheduler) Enqueue(req *model.ReservationRequest) *Ticket {
	ticket := newTicket(req)
	item := &queueItem{
		req:    req,
		seq:    s.seq.Add(1),
		ticket: ticket,
	}
	s.queueFor(req.ResourceID).push(item)

	s.log.Debug("Reservation request queued",
		"resource_id", req.ResourceID,
		"day_of_week", req.DayOfWeek,
		"priority", req.Priority,
	)
	return ticket
}

// Drain resolves every request queued for the classroom, lowest score first,
// and returns how many it resolved. Store I/O runs on a context detached
// from ctx's cancellation because the drained requests may belong to other
// callers.
func (s *Scheduler) Drain(ctx context.Context, resourceID string) int {
	q := s.queueFor(resourceID)

	q.slot <- struct{}{}
	defer func() { <-q.slot }()

	return s.drainUntil(context.WithoutCancel(ctx), q, nil)
}

// drainUntil resolves queued requests in order until the queue is empty or,
// when stop is set, stop has been resolved. The caller must hold q.slot.
func (s *Scheduler) drainUntil(ctx context.Context, q *resourceQueue, stop *Ticket) int {
	resolved := 0
	for stop == nil || !stop.resolved.Load() {
		item, ok := q.pop()
		if !ok {
			break
		}
		item.ticket.resolve(s.resolve(ctx, item.req))
		resolved++
	}
	return resolved
}

func (s *Scheduler) QueueLength(resourceID string) int {
	s.mu.Lock()
	q, ok := s.queues[resourceID]
	s.mu.Unlock()
	if !ok {
		return 0
	}
	return q.len()
}

// RunLockSweep clears locks that expired at or before now.
func (s *Scheduler) RunLockSweep(ctx context.Context, now time.Time) (int64, error) {
	return s.locks.SweepExpiredAt(ctx, now)
}

func (s *Scheduler) queueFor(resourceID string) *resourceQueue {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.queues[resourceID]
	if !ok {
		q = newResourceQueue()
		s.queues[resourceID] = q
	}
	return q
}

// resolve runs conflict check, lock and insert, in that order.
func (s *Scheduler) resolve(ctx context.Context, req *model.ReservationRequest) Outcome {
	conflict, err := s.conflicts.FindConflict(ctx, req.ResourceID, req.DayOfWeek, req.StartTime, req.EndTime)
	if err != nil {
		s.log.Error("Conflict check failed",
			"resource_id", req.ResourceID,
			"day_of_week", req.DayOfWeek,
			"error", err,
		)
		return Outcome{Status: StatusTransientError, Err: err}
	}
	if conflict != nil {
		s.log.Info("Reservation conflicts with an existing one",
			"resource_id", req.ResourceID,
			"day_of_week", req.DayOfWeek,
			"start_time", req.StartTime,
			"end_time", req.EndTime,
			"existing_start", conflict.StartTime,
			"existing_end", conflict.EndTime,
		)
		return Outcome{Status: StatusConflicted, ConflictsWith: conflict}
	}

	granted, err := s.locks.TryLock(ctx, req.ResourceID)
	if err != nil {
		s.log.Error("Failed to acquire classroom lock", "resource_id", req.ResourceID, "error", err)
		return Outcome{Status: StatusTransientError, Err: err}
	}
	if !granted {
		s.log.Info("Classroom is locked or unavailable", "resource_id", req.ResourceID)
		return Outcome{Status: StatusLockDenied}
	}

	reservation := req.ToReservation(s.clock.Now())
	if err := s.store.Insert(ctx, reservation); err != nil {
		s.log.Error("Failed to persist reservation", "resource_id", req.ResourceID, "error", err)
		return Outcome{Status: StatusTransientError, Err: err}
	}

	s.log.Info("Reservation committed",
		"id", reservation.ID,
		"resource_id", reservation.ResourceID,
		"day_of_week", reservation.DayOfWeek,
		"start_time", reservation.StartTime,
		"end_time", reservation.EndTime,
		"requester_role", reservation.RequesterRole,
		"reservation_type", reservation.ReservationType,
	)
	return Outcome{Status: StatusCommitted, Reservation: reservation}
}
