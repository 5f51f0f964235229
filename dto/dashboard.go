package dto

// DashboardStats is the role-aware stats payload. The role-conditional blocks
// (TaskProgress for team leads, the User* fields for employees) are omitted
// from the JSON when empty.
type DashboardStats struct {
	TotalUsers    int64 `json:"total_users"`
	TotalProjects int64 `json:"total_projects"`
	TotalTasks    int64 `json:"total_tasks"`
	TotalWorklogs int64 `json:"total_worklogs"`

	ActiveProjects     int64 `json:"active_projects"`
	InProgressProjects int64 `json:"in_progress_projects"`
	OnHoldProjects     int64 `json:"on_hold_projects"`
	CompletedProjects  int64 `json:"completed_projects"`

	CompletedTasks int64 `json:"completed_tasks"`
	PendingTasks   int64 `json:"pending_tasks"`

	ProjectStatus    map[string]int64 `json:"project_status"`
	RoleDistribution map[string]int64 `json:"role_distribution"`

	// Team Lead only
	TaskProgress map[string]int64 `json:"task_progress,omitempty"`

	// Employee only
	UserTotalProjects      int64 `json:"user_total_projects,omitempty"`
	UserCompletedProjects  int64 `json:"user_completed_projects,omitempty"`
	UserInProgressProjects int64 `json:"user_in_progress_projects,omitempty"`
	TodayMinutes           int64 `json:"today_minutes,omitempty"`
	TotalMinutes           int64 `json:"total_minutes,omitempty"`
}
