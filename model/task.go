package model

import "time"

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in-progress"
	TaskReview     TaskStatus = "review"
	TaskCompleted  TaskStatus = "completed"
)

func ValidTaskStatus(s string) bool {
	switch TaskStatus(s) {
	case TaskTodo, TaskInProgress, TaskReview, TaskCompleted:
		return true
	}
	return false
}

type Task struct {
	TaskID      string     `bson:"task_id" json:"id"`
	Title       string     `bson:"title" json:"title"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
	ProjectID   string     `bson:"project_id" json:"project_id"`
	AssignedTo  string     `bson:"assigned_to,omitempty" json:"assigned_to,omitempty"`
	CreatedBy   string     `bson:"created_by" json:"created_by"`
	Status      TaskStatus `bson:"status" json:"status"`
	Deadline    time.Time  `bson:"deadline,omitempty" json:"deadline,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
}
