package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	reservationserrors "classbook/internal/reservations/errors"
	"classbook/pkg/config"
	"classbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReservationRepository interface {
	Insert(ctx context.Context, r *model.Reservation) error
	FindByID(ctx context.Context, id string) (*model.Reservation, error)
	QueryOverlaps(ctx context.Context, resourceID string, day model.Weekday, start, end string) ([]*model.Reservation, error)
	FindByResourceAndDay(ctx context.Context, resourceID string, day model.Weekday) ([]*model.Reservation, error)
	BusyResourceIDs(ctx context.Context, block string, day model.Weekday, start, end string) ([]string, error)
	DeleteByDays(ctx context.Context, days []model.Weekday) (int64, error)
}

type mongoReservationRepository struct {
	collection   *mongo.Collection
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewMongoReservationRepository(cfg *config.Config) ReservationRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReservationRepository{
		collection:   db.Collection(ReservationsCollection),
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
	}
}

// overlapFilter matches reservations on the same room and day whose
// half-open interval intersects [start, end).
func overlapFilter(resourceID string, day model.Weekday, start, end string) bson.M {
	return bson.M{
		"resource_id": resourceID,
		"day_of_week": day,
		"start_time":  bson.M{"$lt": end},
		"end_time":    bson.M{"$gt": start},
	}
}

func (r *mongoReservationRepository) Insert(ctx context.Context, res *model.Reservation) error {
	ctx, cancel := withTimeout(ctx, r.writeTimeout)
	defer cancel()

	res.CreatedAt = res.CreatedAt.UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, res)
	if err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		res.ID = oid.Hex()
	}
	return nil
}

func (r *mongoReservationRepository) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	ctx, cancel := withTimeout(ctx, r.readTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", reservationserrors.ErrInvalidID, id)
	}

	var res model.Reservation
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&res); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", reservationserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}
	return &res, nil
}

func (r *mongoReservationRepository) QueryOverlaps(ctx context.Context, resourceID string, day model.Weekday, start, end string) ([]*model.Reservation, error) {
	ctx, cancel := withTimeout(ctx, r.readTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, overlapFilter(resourceID, day, start, end))
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var results []*model.Reservation
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}
	return results, nil
}

func (r *mongoReservationRepository) FindByResourceAndDay(ctx context.Context, resourceID string, day model.Weekday) ([]*model.Reservation, error) {
	ctx, cancel := withTimeout(ctx, r.readTimeout)
	defer cancel()

	filter := bson.M{"resource_id": resourceID, "day_of_week": day}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reservations for classroom [%s]: %w", resourceID, err)
	}
	defer cursor.Close(ctx)

	results := []*model.Reservation{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}
	return results, nil
}

// BusyResourceIDs lists rooms in block that hold a reservation overlapping
// [start, end) on day.
func (r *mongoReservationRepository) BusyResourceIDs(ctx context.Context, block string, day model.Weekday, start, end string) ([]string, error) {
	ctx, cancel := withTimeout(ctx, r.readTimeout)
	defer cancel()

	filter := bson.M{
		"block":       block,
		"day_of_week": day,
		"start_time":  bson.M{"$lt": end},
		"end_time":    bson.M{"$gt": start},
	}

	values, err := r.collection.Distinct(ctx, "resource_id", filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list busy classrooms in block [%s]: %w", block, err)
	}

	ids := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *mongoReservationRepository) DeleteByDays(ctx context.Context, days []model.Weekday) (int64, error) {
	if len(days) == 0 {
		return 0, nil
	}

	ctx, cancel := withTimeout(ctx, r.writeTimeout)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"day_of_week": bson.M{"$in": days}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete reservations for %v: %w", days, err)
	}
	return result.DeletedCount, nil
}
