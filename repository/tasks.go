package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TaskRepo struct {
	MongoCollection *mongo.Collection
}

func GetTaskRepo(client *mongo.Client) *TaskRepo {
	dbName := os.Getenv("MONGO_DB")
	return &TaskRepo{
		MongoCollection: client.Database(dbName).Collection("tasks"),
	}
}

func (r *TaskRepo) Insert(ctx context.Context, task *model.Task) error {
	timer := utils.TrackDBOperation("insert", "tasks")
	defer timer.ObserveDuration()

	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt

	_, err := r.MongoCollection.InsertOne(ctx, task)
	if err != nil {
		utils.TrackError("database", "task_creation_failed")
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *TaskRepo) List(ctx context.Context, filter bson.M) ([]*model.Task, error) {
	timer := utils.TrackDBOperation("find", "tasks")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "task_list_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []*model.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepo) FindByID(ctx context.Context, taskID string) (*model.Task, error) {
	timer := utils.TrackDBOperation("find", "tasks")
	defer timer.ObserveDuration()

	var task model.Task
	err := r.MongoCollection.FindOne(ctx, bson.M{"task_id": taskID}).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "task_lookup_error")
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepo) Update(ctx context.Context, taskID string, set bson.M) (*model.Task, error) {
	timer := utils.TrackDBOperation("update", "tasks")
	defer timer.ObserveDuration()

	set["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated model.Task
	err := r.MongoCollection.FindOneAndUpdate(ctx,
		bson.M{"task_id": taskID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "task_update_failed")
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return &updated, nil
}

func (r *TaskRepo) Delete(ctx context.Context, taskID string) error {
	timer := utils.TrackDBOperation("delete", "tasks")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"task_id": taskID})
	if err != nil {
		utils.TrackError("database", "task_deletion_failed")
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.DeletedCount == 0 {
		return errors.New("task not found")
	}
	return nil
}

func (r *TaskRepo) CountTasks(ctx context.Context, filter bson.M) (int64, error) {
	timer := utils.TrackDBOperation("count", "tasks")
	defer timer.ObserveDuration()

	return r.MongoCollection.CountDocuments(ctx, filter)
}

// StatusBreakdown groups tasks by status.
func (r *TaskRepo) StatusBreakdown(ctx context.Context) (map[string]int64, error) {
	timer := utils.TrackDBOperation("aggregate", "tasks")
	defer timer.ObserveDuration()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.TrackError("database", "task_aggregation_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	breakdown := make(map[string]int64, len(rows))
	for _, row := range rows {
		breakdown[row.Status] = row.Count
	}
	return breakdown, nil
}
