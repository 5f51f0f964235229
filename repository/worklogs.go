package repository

import (
	"context"
	"fmt"
	"os"
	"time"

	"main/dto"
	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type WorklogRepo struct {
	MongoCollection *mongo.Collection
}

func GetWorklogRepo(client *mongo.Client) *WorklogRepo {
	dbName := os.Getenv("MONGO_DB")
	return &WorklogRepo{
		MongoCollection: client.Database(dbName).Collection("worklogs"),
	}
}

// LogWorkParams is the key and payload of a create-or-accumulate call.
type LogWorkParams struct {
	UserID    string
	ProjectID string
	TaskID    string
	StartDate time.Time
	EndDate   time.Time
	Durations []int
	Notes     string
	Day       time.Time // midnight, server local time
}

// logWorkFilter keys the upsert on (user, project, task, calendar day).
func logWorkFilter(p LogWorkParams) bson.M {
	return bson.M{
		"user_id":    p.UserID,
		"project_id": p.ProjectID,
		"task_id":    p.TaskID,
		"date":       p.Day,
	}
}

// logWorkUpdate appends the new session durations and moves the end marker.
// Identity, start date and creation time are only written when the document
// is inserted; start_date is never modified after creation, and notes are
// overwritten only when supplied.
func logWorkUpdate(p LogWorkParams, worklogID string, now time.Time) bson.M {
	set := bson.M{
		"end_date":   p.EndDate,
		"updated_at": now,
	}
	if p.Notes != "" {
		set["notes"] = p.Notes
	}

	return bson.M{
		"$push": bson.M{"durations": bson.M{"$each": p.Durations}},
		"$set":  set,
		"$setOnInsert": bson.M{
			"worklog_id": worklogID,
			"start_date": p.StartDate,
			"created_at": now,
		},
	}
}

// LogWork creates or accumulates the worklog for (user, project, task, day) as
// a single atomic conditional upsert, so two near-simultaneous calls for the
// same key cannot produce two documents. Returns the resulting document and
// whether it was newly created.
func (r *WorklogRepo) LogWork(ctx context.Context, p LogWorkParams) (*model.Worklog, bool, error) {
	timer := utils.TrackDBOperation("upsert", "worklogs")
	defer timer.ObserveDuration()

	candidateID := utils.GenerateID()
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result model.Worklog
	err := r.MongoCollection.FindOneAndUpdate(ctx,
		logWorkFilter(p),
		logWorkUpdate(p, candidateID, time.Now()),
		opts).Decode(&result)
	if err != nil {
		utils.TrackError("database", "worklog_upsert_failed")
		return nil, false, fmt.Errorf("failed to log work: %w", err)
	}

	created := result.WorklogID == candidateID
	if created {
		utils.TrackWorklogOperation("create")
	} else {
		utils.TrackWorklogOperation("accumulate")
	}

	return &result, created, nil
}

func (r *WorklogRepo) FindByID(ctx context.Context, worklogID string) (*model.Worklog, error) {
	timer := utils.TrackDBOperation("find", "worklogs")
	defer timer.ObserveDuration()

	var log model.Worklog
	err := r.MongoCollection.FindOne(ctx, bson.M{"worklog_id": worklogID}).Decode(&log)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "worklog_lookup_error")
		return nil, err
	}
	return &log, nil
}

// AppendSession appends a single session to an existing log and optionally
// moves the end marker or replaces the notes. Ownership is checked by the
// caller before this runs.
func (r *WorklogRepo) AppendSession(ctx context.Context, worklogID string, duration *int, endDate *time.Time, notes *string) (*model.Worklog, error) {
	timer := utils.TrackDBOperation("update", "worklogs")
	defer timer.ObserveDuration()

	update := bson.M{}
	set := bson.M{"updated_at": time.Now()}
	if duration != nil {
		update["$push"] = bson.M{"durations": *duration}
	}
	if endDate != nil {
		set["end_date"] = *endDate
	}
	if notes != nil {
		set["notes"] = *notes
	}
	update["$set"] = set

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated model.Worklog
	err := r.MongoCollection.FindOneAndUpdate(ctx,
		bson.M{"worklog_id": worklogID}, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "worklog_update_failed")
		return nil, fmt.Errorf("failed to update worklog: %w", err)
	}

	utils.TrackWorklogOperation("update")
	return &updated, nil
}

// List returns worklogs matching filter, newest day first. The filter must
// already be scoped to the caller's visibility.
func (r *WorklogRepo) List(ctx context.Context, filter bson.M) ([]*model.Worklog, error) {
	timer := utils.TrackDBOperation("find", "worklogs")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "worklog_list_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []*model.Worklog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// ListPage returns a page of worklogs matching filter, newest day first, with
// the total count of the filtered set.
func (r *WorklogRepo) ListPage(ctx context.Context, filter bson.M, page, limit int) ([]*model.Worklog, int64, error) {
	timer := utils.TrackDBOperation("find", "worklogs")
	defer timer.ObserveDuration()

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "worklog_list_failed")
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var logs []*model.Worklog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, 0, err
	}

	total, err := r.MongoCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

func (r *WorklogRepo) CountWorklogs(ctx context.Context, filter bson.M) (int64, error) {
	timer := utils.TrackDBOperation("count", "worklogs")
	defer timer.ObserveDuration()

	return r.MongoCollection.CountDocuments(ctx, filter)
}

// Summarize aggregates the filtered set: total minutes, log count, average
// minutes per log.
func (r *WorklogRepo) Summarize(ctx context.Context, filter bson.M) (dto.WorklogSummary, error) {
	timer := utils.TrackDBOperation("aggregate", "worklogs")
	defer timer.ObserveDuration()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"total_minutes": bson.M{"$sum": bson.M{"$sum": "$durations"}},
			"total_logs":    bson.M{"$sum": 1},
			"avg_minutes":   bson.M{"$avg": bson.M{"$sum": "$durations"}},
		}}},
	}

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.TrackError("database", "worklog_aggregation_failed")
		return dto.WorklogSummary{}, err
	}
	defer cursor.Close(ctx)

	var rows []dto.WorklogSummary
	if err := cursor.All(ctx, &rows); err != nil {
		return dto.WorklogSummary{}, err
	}
	if len(rows) == 0 {
		return dto.WorklogSummary{}, nil
	}
	return rows[0], nil
}

// TopUser is a most-active-user aggregation row.
type TopUser struct {
	UserID       string `bson:"_id" json:"user_id"`
	TotalMinutes int64  `bson:"total_minutes" json:"total_minutes"`
	TotalLogs    int64  `bson:"total_logs" json:"total_logs"`
}

// MostActiveUsers ranks users by accumulated minutes over the filtered set.
func (r *WorklogRepo) MostActiveUsers(ctx context.Context, filter bson.M, limit int) ([]TopUser, error) {
	timer := utils.TrackDBOperation("aggregate", "worklogs")
	defer timer.ObserveDuration()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.M{
			"_id":           "$user_id",
			"total_minutes": bson.M{"$sum": bson.M{"$sum": "$durations"}},
			"total_logs":    bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"total_minutes": -1}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.TrackError("database", "worklog_aggregation_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []TopUser
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
