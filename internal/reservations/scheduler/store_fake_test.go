package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"classbook/pkg/model"
)

// fakeStore keeps classrooms and reservations in memory and records the
// order of store calls so tests can assert on sequencing.
type fakeStore struct {
	mu           sync.Mutex
	classrooms   map[string]*model.Classroom
	reservations []*model.Reservation
	calls        []string
	nextID       int

	queryErr  error
	lockErr   error
	insertErr error
	clearErr  error

	// onQuery runs before QueryOverlaps answers, outside the store mutex.
	onQuery func(resourceID string)
}

func newFakeStore(rooms ...string) *fakeStore {
	s := &fakeStore{classrooms: make(map[string]*model.Classroom)}
	for _, id := range rooms {
		s.classrooms[id] = &model.Classroom{ID: id, Block: "A", Capacity: 40, Available: true}
	}
	return s
}

func (s *fakeStore) record(format string, args ...any) {
	s.calls = append(s.calls, fmt.Sprintf(format, args...))
}

func (s *fakeStore) QueryOverlaps(ctx context.Context, resourceID string, day model.Weekday, start, end string) ([]*model.Reservation, error) {
	if s.onQuery != nil {
		s.onQuery(resourceID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("query %s %s %s-%s", resourceID, day, start, end)
	if s.queryErr != nil {
		return nil, s.queryErr
	}

	var out []*model.Reservation
	for _, r := range s.reservations {
		if r.ResourceID == resourceID && r.DayOfWeek == day && r.StartTime < end && r.EndTime > start {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeStore) ConditionalLock(ctx context.Context, resourceID string, now, until time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("lock %s", resourceID)
	if s.lockErr != nil {
		return false, s.lockErr
	}

	room, ok := s.classrooms[resourceID]
	if !ok || !room.Lockable(now) {
		return false, nil
	}
	room.LockedUntil = &until
	return true, nil
}

func (s *fakeStore) ClearExpiredLocks(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("sweep")
	if s.clearErr != nil {
		return 0, s.clearErr
	}

	var cleared int64
	for _, room := range s.classrooms {
		if room.LockedUntil != nil && !room.LockedUntil.After(now) {
			room.LockedUntil = nil
			cleared++
		}
	}
	return cleared, nil
}

func (s *fakeStore) Insert(ctx context.Context, r *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("insert %s %s-%s %s", r.ResourceID, r.StartTime, r.EndTime, r.RequesterRole)
	if s.insertErr != nil {
		return s.insertErr
	}

	s.nextID++
	r.ID = fmt.Sprintf("res-%d", s.nextID)
	s.reservations = append(s.reservations, r)
	return nil
}

func (s *fakeStore) lockRoom(resourceID string, until time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classrooms[resourceID].LockedUntil = &until
}

func (s *fakeStore) lockedUntil(resourceID string) *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.classrooms[resourceID].LockedUntil
}

func (s *fakeStore) committed() []*model.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.Reservation(nil), s.reservations...)
}

func (s *fakeStore) callLog() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}
