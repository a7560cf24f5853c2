package maintenance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is the recurrence bucket a task belongs to. Every category except
// non-printing doubles as a recurrence Frequency; non-printing tasks are
// manually tracked and never pass through the cycle calculator.
type Category string

const (
	CategoryDaily       Category = "daily"
	CategoryWeekly      Category = "weekly"
	CategoryMonthly     Category = "monthly"
	CategoryQuarterly   Category = "quarterly"
	CategoryYearly      Category = "yearly"
	CategoryNonPrinting Category = "non-printing"
)

// ValidCategory reports whether s names a known task category.
func ValidCategory(s string) bool {
	switch Category(s) {
	case CategoryDaily, CategoryWeekly, CategoryMonthly, CategoryQuarterly, CategoryYearly, CategoryNonPrinting:
		return true
	}
	return false
}

// HasCycle reports whether the category is subject to due-date and reset logic.
func (c Category) HasCycle() bool {
	return c != CategoryNonPrinting
}

// Frequency returns the recurrence frequency for cyclical categories.
func (c Category) Frequency() (Frequency, error) {
	return ParseFrequency(string(c))
}

// Task is one checklist entry for one user. The ID is the catalog slug for
// seeded tasks or a generated uuid string for custom ones, so the primary key
// is the (id, user_id) pair.
type Task struct {
	ID            string     `gorm:"size:64;primaryKey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	Category      Category   `gorm:"size:32;not null;index" json:"category"`
	Completed     bool       `gorm:"default:false;not null" json:"completed"`
	LastCompleted *time.Time `gorm:"default:null" json:"last_completed,omitempty"`
	CompletedBy   string     `gorm:"size:255" json:"completed_by,omitempty"`
	Notes         string     `gorm:"type:text" json:"notes,omitempty"`
	Custom        bool       `gorm:"default:false;not null" json:"custom"`
	CreatedAt     time.Time  `gorm:"not null;default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null;default:current_timestamp;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Task model
func (Task) TableName() string {
	return "maintenance_tasks"
}

// BeforeCreate is called before creating a new task record
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate is called before updating a task record
func (t *Task) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return nil
}

// Log is an append-only record of one completion event. Written exactly once
// per completion toggle, never on un-toggle, never mutated.
type Log struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index:idx_log_user_time,priority:1" json:"user_id"`
	TaskID       string    `gorm:"size:64;not null" json:"task_id"`
	TaskTitle    string    `gorm:"size:255;not null" json:"task_title"`
	Category     Category  `gorm:"size:32;not null" json:"category"`
	CompletedAt  time.Time `gorm:"not null;index:idx_log_user_time,priority:2" json:"completed_at"`
	CompletedBy  string    `gorm:"size:255;not null" json:"completed_by"`
	SerialNumber string    `gorm:"size:64" json:"serial_number,omitempty"`
	Notes        string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time `gorm:"not null;default:current_timestamp" json:"created_at"`
}

// TableName specifies the table name for the Log model
func (Log) TableName() string {
	return "maintenance_logs"
}

// BeforeCreate is called before creating a new log record
func (l *Log) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	l.CreatedAt = time.Now()
	return nil
}

// CreateTaskInput represents the input for adding a custom task
type CreateTaskInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	UserID      uuid.UUID `json:"user_id"`
}

// ToggleTaskInput represents the input for toggling a task's completion state
type ToggleTaskInput struct {
	UserID      uuid.UUID `json:"user_id"`
	CompletedBy string    `json:"completed_by"`
	Notes       string    `json:"notes"`
}

// TaskView is a task decorated with cycle information for API responses.
type TaskView struct {
	Task
	NextDue *time.Time `json:"next_due,omitempty"`
	IsDue   bool       `json:"is_due"`
}
