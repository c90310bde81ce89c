package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	reservationserrors "classbook/internal/reservations/errors"
	"classbook/pkg/config"
	mongotx "classbook/pkg/db/mongo"
	"classbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ClassroomRepository interface {
	FindByID(ctx context.Context, id string) (*model.Classroom, error)
	FindAvailable(ctx context.Context, block string, excludeIDs []string, now time.Time) ([]*model.Classroom, error)
	Upsert(ctx context.Context, c *model.Classroom) error
	ConditionalLock(ctx context.Context, resourceID string, now, until time.Time) (bool, error)
	ClearExpiredLocks(ctx context.Context, now time.Time) (int64, error)

	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoClassroomRepository struct {
	collection   *mongo.Collection
	txManager    mongotx.TransactionManager
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewMongoClassroomRepository(cfg *config.Config) ClassroomRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoClassroomRepository{
		collection:   db.Collection(ClassroomsCollection),
		txManager:    mongotx.NewTransactionManager(cfg.Client.Mongo, mongotx.WithStandaloneFallback(cfg.Log)),
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
	}
}

// lockFilter matches the room only while it is available and its lock is
// absent or lapsed at now.
func lockFilter(resourceID string, now time.Time) bson.M {
	return bson.M{
		"_id":       resourceID,
		"available": true,
		"$or": []bson.M{
			{"locked_until": nil},
			{"locked_until": bson.M{"$lte": now}},
		},
	}
}

// availableFilter matches the rooms of block that could be locked at now,
// skipping excludeIDs.
func availableFilter(block string, excludeIDs []string, now time.Time) bson.M {
	filter := bson.M{
		"block":     block,
		"available": true,
		"$or": []bson.M{
			{"locked_until": nil},
			{"locked_until": bson.M{"$lte": now}},
		},
	}
	if len(excludeIDs) > 0 {
		filter["_id"] = bson.M{"$nin": excludeIDs}
	}
	return filter
}

func expiredLockFilter(now time.Time) bson.M {
	return bson.M{"locked_until": bson.M{"$ne": nil, "$lte": now}}
}

func (r *mongoClassroomRepository) FindByID(ctx context.Context, id string) (*model.Classroom, error) {
	ctx, cancel := withTimeout(ctx, r.readTimeout)
	defer cancel()

	var c model.Classroom
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", reservationserrors.ErrClassroomNotFound, id)
		}
		return nil, fmt.Errorf("failed to find classroom: %w", err)
	}
	return &c, nil
}

// FindAvailable lists the rooms of block that are bookable at now: available,
// not soft-locked and not in excludeIDs.
func (r *mongoClassroomRepository) FindAvailable(ctx context.Context, block string, excludeIDs []string, now time.Time) ([]*model.Classroom, error) {
	ctx, cancel := withTimeout(ctx, r.readTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, availableFilter(block, excludeIDs, now.UTC()), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find available classrooms in block [%s]: %w", block, err)
	}
	defer cursor.Close(ctx)

	results := []*model.Classroom{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode classrooms: %w", err)
	}
	return results, nil
}

// Upsert writes the room's descriptive fields and leaves locked_until alone.
func (r *mongoClassroomRepository) Upsert(ctx context.Context, c *model.Classroom) error {
	ctx, cancel := withTimeout(ctx, r.writeTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"block":     c.Block,
			"floor":     c.Floor,
			"capacity":  c.Capacity,
			"available": c.Available,
		},
		"$setOnInsert": bson.M{"locked_until": nil},
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": c.ID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert classroom [%s]: %w", c.ID, err)
	}
	return nil
}

func (r *mongoClassroomRepository) ConditionalLock(ctx context.Context, resourceID string, now, until time.Time) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.writeTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"locked_until": until.UTC()}}
	result, err := r.collection.UpdateOne(ctx, lockFilter(resourceID, now.UTC()), update)
	if err != nil {
		return false, fmt.Errorf("failed to lock classroom [%s]: %w", resourceID, err)
	}
	return result.MatchedCount == 1, nil
}

func (r *mongoClassroomRepository) ClearExpiredLocks(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.writeTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"locked_until": nil}}
	result, err := r.collection.UpdateMany(ctx, expiredLockFilter(now.UTC()), update)
	if err != nil {
		return 0, fmt.Errorf("failed to clear expired classroom locks: %w", err)
	}
	return result.ModifiedCount, nil
}

func (r *mongoClassroomRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
