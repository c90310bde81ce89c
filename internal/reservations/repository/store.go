package repository

import (
	"context"
	"time"

	"classbook/pkg/model"
)

// MongoStore joins the reservation and classroom collections into the single
// store the scheduler needs.
type MongoStore struct {
	Reservations ReservationRepository
	Classrooms   ClassroomRepository
}

func NewMongoStore(reservations ReservationRepository, classrooms ClassroomRepository) *MongoStore {
	return &MongoStore{
		Reservations: reservations,
		Classrooms:   classrooms,
	}
}

func (s *MongoStore) QueryOverlaps(ctx context.Context, resourceID string, day model.Weekday, start, end string) ([]*model.Reservation, error) {
	return s.Reservations.QueryOverlaps(ctx, resourceID, day, start, end)
}

func (s *MongoStore) ConditionalLock(ctx context.Context, resourceID string, now, until time.Time) (bool, error) {
	return s.Classrooms.ConditionalLock(ctx, resourceID, now, until)
}

func (s *MongoStore) ClearExpiredLocks(ctx context.Context, now time.Time) (int64, error) {
	return s.Classrooms.ClearExpiredLocks(ctx, now)
}

func (s *MongoStore) Insert(ctx context.Context, r *model.Reservation) error {
	return s.Reservations.Insert(ctx, r)
}
