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

type ProjectRepo struct {
	MongoCollection *mongo.Collection
}

func GetProjectRepo(client *mongo.Client) *ProjectRepo {
	dbName := os.Getenv("MONGO_DB")
	return &ProjectRepo{
		MongoCollection: client.Database(dbName).Collection("projects"),
	}
}

func (r *ProjectRepo) Insert(ctx context.Context, project *model.Project) error {
	timer := utils.TrackDBOperation("insert", "projects")
	defer timer.ObserveDuration()

	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt

	_, err := r.MongoCollection.InsertOne(ctx, project)
	if err != nil {
		utils.TrackError("database", "project_creation_failed")
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// List returns the page of projects matching filter, newest first, along with
// the total count of the filtered set. The filter must already be scoped to
// the caller's visibility so totals reflect the scoped set.
func (r *ProjectRepo) List(ctx context.Context, filter bson.M, page, limit int) ([]*model.Project, int64, error) {
	timer := utils.TrackDBOperation("find", "projects")
	defer timer.ObserveDuration()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "project_list_failed")
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var projects []*model.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, 0, err
	}

	total, err := r.MongoCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

func (r *ProjectRepo) FindByID(ctx context.Context, projectID string) (*model.Project, error) {
	timer := utils.TrackDBOperation("find", "projects")
	defer timer.ObserveDuration()

	var project model.Project
	err := r.MongoCollection.FindOne(ctx, bson.M{"project_id": projectID}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "project_lookup_error")
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepo) Update(ctx context.Context, projectID string, set bson.M) (*model.Project, error) {
	timer := utils.TrackDBOperation("update", "projects")
	defer timer.ObserveDuration()

	set["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated model.Project
	err := r.MongoCollection.FindOneAndUpdate(ctx,
		bson.M{"project_id": projectID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "project_update_failed")
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return &updated, nil
}

func (r *ProjectRepo) Delete(ctx context.Context, projectID string) error {
	timer := utils.TrackDBOperation("delete", "projects")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"project_id": projectID})
	if err != nil {
		utils.TrackError("database", "project_deletion_failed")
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if result.DeletedCount == 0 {
		return errors.New("project not found")
	}
	return nil
}

// AdjustTaskCounts moves the denormalized task counters by the given deltas.
func (r *ProjectRepo) AdjustTaskCounts(ctx context.Context, projectID string, totalDelta, completedDelta int) error {
	timer := utils.TrackDBOperation("update", "projects")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"project_id": projectID},
		bson.M{
			"$inc": bson.M{"total_tasks": totalDelta, "completed_tasks": completedDelta},
			"$set": bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		utils.TrackError("database", "task_count_update_failed")
		return fmt.Errorf("failed to adjust task counts: %w", err)
	}
	return nil
}

func (r *ProjectRepo) CountProjects(ctx context.Context, filter bson.M) (int64, error) {
	timer := utils.TrackDBOperation("count", "projects")
	defer timer.ObserveDuration()

	return r.MongoCollection.CountDocuments(ctx, filter)
}

// StatusBreakdown groups projects by status.
func (r *ProjectRepo) StatusBreakdown(ctx context.Context) (map[string]int64, error) {
	timer := utils.TrackDBOperation("aggregate", "projects")
	defer timer.ObserveDuration()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.TrackError("database", "project_aggregation_failed")
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

// FindForMember returns all projects where userID appears in the member list.
func (r *ProjectRepo) FindForMember(ctx context.Context, userID string) ([]*model.Project, error) {
	timer := utils.TrackDBOperation("find", "projects")
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"team_members": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var projects []*model.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}
