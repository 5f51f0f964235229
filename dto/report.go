package dto

import "main/model"

// WorklogSummary aggregates a filtered set of worklogs.
type WorklogSummary struct {
	TotalMinutes int64   `json:"total_minutes" bson:"total_minutes"`
	TotalLogs    int64   `json:"total_logs" bson:"total_logs"`
	AvgMinutes   float64 `json:"avg_minutes" bson:"avg_minutes"`
}

type ReportResponse struct {
	Reports     []*model.Worklog `json:"reports"`
	TotalPages  int              `json:"total_pages"`
	CurrentPage int              `json:"current_page"`
	Total       int64            `json:"total"`
	Summary     WorklogSummary   `json:"summary"`
}

type ActivityListResponse struct {
	Activities  []*model.ActivityLog `json:"activities"`
	TotalPages  int                  `json:"total_pages"`
	CurrentPage int                  `json:"current_page"`
	Total       int64                `json:"total"`
}
