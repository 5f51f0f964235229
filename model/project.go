package model

import "time"

type ProjectStatus string

const (
	ProjectActive     ProjectStatus = "active"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectOnHold     ProjectStatus = "onhold"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectCancelled  ProjectStatus = "cancelled"
)

func ValidProjectStatus(s string) bool {
	switch ProjectStatus(s) {
	case ProjectActive, ProjectInProgress, ProjectOnHold, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}

type Project struct {
	ProjectID        string        `bson:"project_id" json:"id"`
	Name             string        `bson:"name" json:"name"`
	Description      string        `bson:"description,omitempty" json:"description,omitempty"`
	StartDate        time.Time     `bson:"start_date" json:"start_date"`
	EndDate          time.Time     `bson:"end_date" json:"end_date"`
	Status           ProjectStatus `bson:"status" json:"status"`
	CreatedBy        string        `bson:"created_by" json:"created_by"`
	TeamLeads        []string      `bson:"team_leads,omitempty" json:"team_leads,omitempty"`
	TeamCoordinators []string      `bson:"team_coordinators,omitempty" json:"team_coordinators,omitempty"`
	TeamMembers      []string      `bson:"team_members,omitempty" json:"team_members,omitempty"`
	TotalTasks       int           `bson:"total_tasks" json:"total_tasks"`
	CompletedTasks   int           `bson:"completed_tasks" json:"completed_tasks"`
	CreatedAt        time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time     `bson:"updated_at" json:"updated_at"`
}
