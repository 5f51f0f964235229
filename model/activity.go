package model

import "time"

// Activity log actions. The collection is append-only; entries are never
// mutated or deleted by the application.
const (
	ActionLogin          = "login"
	ActionLogout         = "logout"
	ActionProjectCreated = "project_created"
	ActionProjectUpdated = "project_updated"
	ActionProjectDeleted = "project_deleted"
	ActionTaskCreated    = "task_created"
	ActionTaskUpdated    = "task_updated"
	ActionTaskDeleted    = "task_deleted"
	ActionWorklogCreated = "worklog_created"
	ActionWorklogUpdated = "worklog_updated"
)

type ActivityLog struct {
	UserID     string         `bson:"user_id" json:"user_id"`
	Action     string         `bson:"action" json:"action"`
	TargetID   string         `bson:"target_id,omitempty" json:"target_id,omitempty"`
	TargetType string         `bson:"target_type,omitempty" json:"target_type,omitempty"` // Project, Task, Worklog, User
	Details    map[string]any `bson:"details,omitempty" json:"details,omitempty"`
	IPAddress  string         `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	UserAgent  string         `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Timestamp  time.Time      `bson:"timestamp" json:"timestamp"`
}
