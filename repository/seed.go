package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"main/model"
	"main/services"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeedDemoData wipes the tracker collections and loads the demo data set.
// Intended for local development only.
func SeedDemoData(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)

	for _, name := range []string{"users", "projects", "tasks", "worklogs", "activity_logs"} {
		if err := db.Collection(name).Drop(ctx); err != nil {
			return fmt.Errorf("failed to drop %s: %w", name, err)
		}
	}

	userRepo := &UserRepo{MongoCollection: db.Collection("users")}
	projectRepo := &ProjectRepo{MongoCollection: db.Collection("projects")}
	taskRepo := &TaskRepo{MongoCollection: db.Collection("tasks")}
	worklogRepo := &WorklogRepo{MongoCollection: db.Collection("worklogs")}

	type account struct {
		name     string
		email    string
		password string
		role     model.Role
	}
	accounts := []account{
		{"Admin User", "admin@dexpro.com", "admin123", model.RoleAdmin},
		{"Team Lead", "teamlead@dexpro.com", "teamlead123", model.RoleTeamLead},
		{"Project Coordinator", "coordinator@dexpro.com", "coordinator123", model.RoleCoordinator},
		{"John Employee", "emp@dexpro.com", "emp123", model.RoleEmployee},
		{"Jane Developer", "jane@dexpro.com", "jane123", model.RoleEmployee},
	}

	users := make([]*model.User, 0, len(accounts))
	for _, a := range accounts {
		hash, err := services.HashPassword(a.password)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", a.email, err)
		}
		u := &model.User{
			UserID:   utils.GenerateID(),
			Name:     a.name,
			Email:    a.email,
			Password: hash,
			Role:     a.role,
			IsActive: true,
		}
		if err := userRepo.AddUser(ctx, u); err != nil {
			return err
		}
		users = append(users, u)
	}

	lead := users[1]
	employees := []*model.User{users[3], users[4]}

	// Both employees report to the team lead.
	for _, e := range employees {
		if _, err := db.Collection("users").UpdateOne(ctx,
			bson.M{"user_id": e.UserID},
			bson.M{"$set": bson.M{"team_lead": lead.UserID}}); err != nil {
			return fmt.Errorf("failed to assign team lead: %w", err)
		}
	}

	projects := []*model.Project{
		{
			ProjectID:   utils.GenerateID(),
			Name:        "Website Redesign",
			Description: "Complete redesign of the company website",
			StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
			EndDate:     time.Date(2024, 6, 30, 0, 0, 0, 0, time.Local),
			Status:      model.ProjectActive,
			CreatedBy:   lead.UserID,
			TeamMembers: []string{employees[0].UserID, employees[1].UserID},
		},
		{
			ProjectID:   utils.GenerateID(),
			Name:        "Mobile App Development",
			Description: "Develop a new mobile application",
			StartDate:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local),
			EndDate:     time.Date(2024, 8, 31, 0, 0, 0, 0, time.Local),
			Status:      model.ProjectActive,
			CreatedBy:   lead.UserID,
			TeamMembers: []string{employees[0].UserID, employees[1].UserID},
		},
		{
			ProjectID:   utils.GenerateID(),
			Name:        "Database Migration",
			Description: "Migrate legacy database to new system",
			StartDate:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local),
			EndDate:     time.Date(2024, 4, 15, 0, 0, 0, 0, time.Local),
			Status:      model.ProjectCompleted,
			CreatedBy:   lead.UserID,
			TeamMembers: []string{employees[0].UserID},
		},
	}
	for _, p := range projects {
		if err := projectRepo.Insert(ctx, p); err != nil {
			return err
		}
	}

	tasks := []*model.Task{
		{
			TaskID:      utils.GenerateID(),
			Title:       "Design Homepage Layout",
			Description: "Create wireframes and mockups for the new homepage",
			ProjectID:   projects[0].ProjectID,
			AssignedTo:  employees[0].UserID,
			CreatedBy:   lead.UserID,
			Status:      model.TaskCompleted,
			Deadline:    time.Date(2024, 2, 15, 0, 0, 0, 0, time.Local),
		},
		{
			TaskID:      utils.GenerateID(),
			Title:       "Implement User Authentication",
			Description: "Set up login and registration functionality",
			ProjectID:   projects[0].ProjectID,
			AssignedTo:  employees[1].UserID,
			CreatedBy:   lead.UserID,
			Status:      model.TaskInProgress,
			Deadline:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local),
		},
		{
			TaskID:      utils.GenerateID(),
			Title:       "Create Contact Form",
			Description: "Build a responsive contact form with validation",
			ProjectID:   projects[0].ProjectID,
			AssignedTo:  employees[0].UserID,
			CreatedBy:   lead.UserID,
			Status:      model.TaskTodo,
			Deadline:    time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local),
		},
		{
			TaskID:      utils.GenerateID(),
			Title:       "Database Schema Design",
			Description: "Design the database schema for the new system",
			ProjectID:   projects[2].ProjectID,
			AssignedTo:  employees[0].UserID,
			CreatedBy:   lead.UserID,
			Status:      model.TaskCompleted,
			Deadline:    time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local),
		},
	}
	for _, t := range tasks {
		if err := taskRepo.Insert(ctx, t); err != nil {
			return err
		}
	}

	// Recompute project task counters from the seeded tasks.
	for _, p := range projects {
		total := 0
		completed := 0
		for _, t := range tasks {
			if t.ProjectID != p.ProjectID {
				continue
			}
			total++
			if t.Status == model.TaskCompleted {
				completed++
			}
		}
		if _, err := projectRepo.Update(ctx, p.ProjectID, bson.M{
			"total_tasks":     total,
			"completed_tasks": completed,
		}); err != nil {
			return err
		}
	}

	type logEntry struct {
		user    *model.User
		project *model.Project
		task    *model.Task
		day     time.Time
		minutes []int
		notes   string
	}
	logs := []logEntry{
		{employees[0], projects[0], tasks[0], time.Date(2024, 1, 20, 0, 0, 0, 0, time.Local),
			[]int{480}, "Created initial wireframes and gathered requirements"},
		{employees[0], projects[0], tasks[0], time.Date(2024, 1, 21, 0, 0, 0, 0, time.Local),
			[]int{360}, "Refined designs based on feedback"},
		{employees[1], projects[0], tasks[1], time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local),
			[]int{420}, "Set up authentication middleware and routes"},
		{employees[1], projects[0], tasks[1], time.Date(2024, 2, 2, 0, 0, 0, 0, time.Local),
			[]int{300}, "Implemented login and registration forms"},
		{employees[0], projects[2], tasks[3], time.Date(2024, 1, 25, 0, 0, 0, 0, time.Local),
			[]int{480}, "Analyzed existing database structure"},
		{employees[0], projects[2], tasks[3], time.Date(2024, 1, 26, 0, 0, 0, 0, time.Local),
			[]int{540}, "Designed new database schema with optimizations"},
	}
	for _, l := range logs {
		if _, _, err := worklogRepo.LogWork(ctx, LogWorkParams{
			UserID:    l.user.UserID,
			ProjectID: l.project.ProjectID,
			TaskID:    l.task.TaskID,
			StartDate: l.day.Add(9 * time.Hour),
			EndDate:   l.day.Add(9*time.Hour + time.Duration(l.minutes[0])*time.Minute),
			Durations: l.minutes,
			Notes:     l.notes,
			Day:       l.day,
		}); err != nil {
			return err
		}
	}

	log.Println("Seed data created successfully")
	log.Println("Demo accounts:")
	for _, a := range accounts {
		log.Printf("  %s: %s / %s", a.role, a.email, a.password)
	}

	return nil
}
