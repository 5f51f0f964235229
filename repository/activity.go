package repository

import (
	"context"
	"fmt"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActivityRepo is append-only: entries are inserted and read, never mutated
// or deleted by the application.
type ActivityRepo struct {
	MongoCollection *mongo.Collection
}

func GetActivityRepo(client *mongo.Client) *ActivityRepo {
	dbName := os.Getenv("MONGO_DB")
	return &ActivityRepo{
		MongoCollection: client.Database(dbName).Collection("activity_logs"),
	}
}

func (r *ActivityRepo) Record(ctx context.Context, entry *model.ActivityLog) error {
	timer := utils.TrackDBOperation("insert", "activity_logs")
	defer timer.ObserveDuration()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	_, err := r.MongoCollection.InsertOne(ctx, entry)
	if err != nil {
		utils.TrackError("database", "activity_log_failed")
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}

// List returns a page of activity entries matching filter, newest first, with
// the total count of the filtered set.
func (r *ActivityRepo) List(ctx context.Context, filter bson.M, page, limit int) ([]*model.ActivityLog, int64, error) {
	timer := utils.TrackDBOperation("find", "activity_logs")
	defer timer.ObserveDuration()

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "activity_list_failed")
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var entries []*model.ActivityLog
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, 0, err
	}

	total, err := r.MongoCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
