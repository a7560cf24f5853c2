package dto

import "time"

// AddTaskRequest is the payload for creating a custom checklist task
type AddTaskRequest struct {
	Title       string `json:"title" validate:"required,not_empty,max=255"`
	Description string `json:"description" validate:"max=2000"`
	Category    string `json:"category" validate:"required,task_category"`
}

// ToggleTaskRequest is the payload for toggling a task's completion state
type ToggleTaskRequest struct {
	CompletedBy string `json:"completed_by" validate:"max=255"`
	Notes       string `json:"notes" validate:"max=2000"`
}

// TaskResponse mirrors maintenance.TaskView for API responses
type TaskResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	Completed     bool       `json:"completed"`
	LastCompleted *time.Time `json:"last_completed,omitempty"`
	CompletedBy   string     `json:"completed_by,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	Custom        bool       `json:"custom"`
	NextDue       *time.Time `json:"next_due,omitempty"`
	IsDue         bool       `json:"is_due"`
}

// TaskListResponse is the body of GET /api/tasks
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// ToggleTaskResponse is the body of POST /api/tasks/:id/toggle
type ToggleTaskResponse struct {
	Task      TaskResponse    `json:"task"`
	NewAwards []AwardResponse `json:"new_awards"`
}

// LogQuery is the query string for log listing and export
type LogQuery struct {
	TaskID   string `form:"task_id"`
	Category string `form:"category"`
	From     string `form:"from"`
	To       string `form:"to"`
	Page     int    `form:"page" validate:"min=0"`
	PageSize int    `form:"page_size" validate:"min=0,max=10000"`
}

// LogResponse mirrors one maintenance log entry
type LogResponse struct {
	ID           string    `json:"id"`
	TaskID       string    `json:"task_id"`
	TaskTitle    string    `json:"task_title"`
	Category     string    `json:"category"`
	CompletedAt  time.Time `json:"completed_at"`
	CompletedBy  string    `json:"completed_by"`
	SerialNumber string    `json:"serial_number,omitempty"`
	Notes        string    `json:"notes,omitempty"`
}

// LogListResponse is the body of GET /api/logs
type LogListResponse struct {
	Logs  []LogResponse `json:"logs"`
	Total int64         `json:"total"`
}
