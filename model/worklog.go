package model

import "time"

// Worklog accumulates time-session durations per user/project/task/calendar
// day. At most one document exists per (user_id, project_id, task_id, date);
// the repository enforces this with an atomic upsert.
type Worklog struct {
	WorklogID string    `bson:"worklog_id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	ProjectID string    `bson:"project_id" json:"project_id"`
	TaskID    string    `bson:"task_id" json:"task_id"`
	StartDate time.Time `bson:"start_date" json:"start_date"`
	EndDate   time.Time `bson:"end_date" json:"end_date"`
	Durations []int     `bson:"durations" json:"durations"` // per-session minutes
	Date      time.Time `bson:"date" json:"date"`           // midnight, server local time
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// TotalMinutes sums the accumulated session durations.
func (w *Worklog) TotalMinutes() int {
	total := 0
	for _, d := range w.Durations {
		total += d
	}
	return total
}

// Day truncates t to its local calendar day. A session crossing midnight is
// not split; whichever day the call lands in owns the entry.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
