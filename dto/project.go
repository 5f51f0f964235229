package dto

import (
	"time"

	"main/model"
)

type CreateProjectRequest struct {
	Name             string    `json:"name" binding:"required"`
	Description      string    `json:"description"`
	StartDate        time.Time `json:"start_date" binding:"required"`
	EndDate          time.Time `json:"end_date" binding:"required"`
	Status           string    `json:"status" binding:"omitempty,projectstatus"`
	TeamLeads        []string  `json:"team_leads"`
	TeamCoordinators []string  `json:"team_coordinators"`
	TeamMembers      []string  `json:"team_members"`
}

type UpdateProjectRequest struct {
	Name             *string    `json:"name" binding:"omitempty,min=1"`
	Description      *string    `json:"description"`
	StartDate        *time.Time `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	Status           *string    `json:"status" binding:"omitempty,projectstatus"`
	TeamLeads        []string   `json:"team_leads"`
	TeamCoordinators []string   `json:"team_coordinators"`
	TeamMembers      []string   `json:"team_members"`
}

type ProjectListResponse struct {
	Projects    []*model.Project `json:"projects"`
	TotalPages  int              `json:"total_pages"`
	CurrentPage int              `json:"current_page"`
	Total       int64            `json:"total"`
}
