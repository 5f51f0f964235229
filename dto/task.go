package dto

import "time"

type CreateTaskRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	ProjectID   string    `json:"project_id" binding:"required"`
	AssignedTo  string    `json:"assigned_to"`
	Status      string    `json:"status" binding:"omitempty,taskstatus"`
	Deadline    time.Time `json:"deadline"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1"`
	Description *string    `json:"description"`
	AssignedTo  *string    `json:"assigned_to"`
	Status      *string    `json:"status" binding:"omitempty,taskstatus"`
	Deadline    *time.Time `json:"deadline"`
}
