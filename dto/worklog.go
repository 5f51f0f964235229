package dto

import "time"

// LogWorkRequest covers both the first log of the day and subsequent
// accumulation calls for the same (project, task, day).
type LogWorkRequest struct {
	ProjectID string    `json:"project_id" binding:"required"`
	TaskID    string    `json:"task_id" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
	Durations []int     `json:"durations" binding:"required,min=1,dive,gt=0"` // minutes per session
	Notes     string    `json:"notes"`
}

type UpdateWorklogRequest struct {
	Duration *int       `json:"duration" binding:"omitempty,gt=0"` // single session to append, minutes
	EndDate  *time.Time `json:"end_date"`
	Notes    *string    `json:"notes"`
}
