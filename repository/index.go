package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("unique_email").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetName("user_id_index"),
		},
		{
			Keys: bson.D{{Key: "team_lead", Value: 1}},
			Options: options.Index().
				SetName("team_lead_index"),
		},
	}

	projectIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "project_id", Value: 1}},
			Options: options.Index().
				SetName("project_id_index"),
		},
		{
			Keys: bson.D{{Key: "created_by", Value: 1}},
			Options: options.Index().
				SetName("project_creator"),
		},
		{
			Keys: bson.D{{Key: "team_members", Value: 1}},
			Options: options.Index().
				SetName("project_members"),
		},
	}

	taskIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "task_id", Value: 1}},
			Options: options.Index().
				SetName("task_id_index"),
		},
		{
			Keys: bson.D{{Key: "project_id", Value: 1}},
			Options: options.Index().
				SetName("task_project"),
		},
		{
			Keys: bson.D{{Key: "assigned_to", Value: 1}},
			Options: options.Index().
				SetName("task_assignee"),
		},
	}

	worklogIndexes := []mongo.IndexModel{
		// Backstop for the accumulate invariant: at most one document per
		// (user, project, task, calendar day).
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "project_id", Value: 1},
				{Key: "task_id", Value: 1},
				{Key: "date", Value: 1},
			},
			Options: options.Index().
				SetName("worklog_day_key").
				SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "date", Value: -1},
			},
			Options: options.Index().
				SetName("user_worklogs_date"),
		},
	}

	activityIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "timestamp", Value: -1},
			},
			Options: options.Index().
				SetName("user_activity_date"),
		},
		{
			Keys: bson.D{
				{Key: "target_id", Value: 1},
				{Key: "timestamp", Value: -1},
			},
			Options: options.Index().
				SetName("target_activity_date"),
		},
	}

	collections := map[string][]mongo.IndexModel{
		"users":         userIndexes,
		"projects":      projectIndexes,
		"tasks":         taskIndexes,
		"worklogs":      worklogIndexes,
		"activity_logs": activityIndexes,
	}

	for name, indexes := range collections {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", name, err)
		}
	}

	log.Println("Successfully created all indexes")
	return nil
}
