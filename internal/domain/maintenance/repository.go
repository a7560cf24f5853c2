package maintenance

import (
	"context"
	"errors"
	"time"

	"github.com/cobraflex/printercare/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound     = errors.New("maintenance task not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidFrequency = errors.New("invalid maintenance frequency")
)

// LogFilter defines the filtering options for maintenance logs
type LogFilter struct {
	UserID   *uuid.UUID
	TaskID   *string
	Category *Category
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

// Repository defines the interface for maintenance persistence operations
type Repository interface {
	CreateTask(ctx context.Context, task *Task) error
	CreateTasks(ctx context.Context, tasks []Task) error
	FindTask(ctx context.Context, id string, userID uuid.UUID) (*Task, error)
	FindTasksByUser(ctx context.Context, userID uuid.UUID) ([]Task, error)
	CountTasksByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, id string, userID uuid.UUID) error
	ResetTask(ctx context.Context, id string, userID uuid.UUID) error
	FindCompletedCyclicalTasks(ctx context.Context) ([]Task, error)

	CreateLog(ctx context.Context, log *Log) error
	FindLogs(ctx context.Context, filter LogFilter) ([]Log, int64, error)
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) CreateTask(ctx context.Context, task *Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *repository) CreateTasks(ctx context.Context, tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&tasks).Error
}

func (r *repository) FindTask(ctx context.Context, id string, userID uuid.UUID) (*Task, error) {
	var task Task
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&task)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

func (r *repository) FindTasksByUser(ctx context.Context, userID uuid.UUID) ([]Task, error) {
	var tasks []Task
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *repository) CountTasksByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Task{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *repository) UpdateTask(ctx context.Context, task *Task) error {
	result := r.db.WithContext(ctx).Save(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *repository) DeleteTask(ctx context.Context, id string, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// ResetTask flips a completed task back to incomplete at a cycle boundary.
// LastCompleted is kept so the next due date stays anchored to the most
// recent completion.
func (r *repository) ResetTask(ctx context.Context, id string, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&Task{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"completed":    false,
			"completed_by": "",
			"notes":        "",
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// FindCompletedCyclicalTasks returns every completed task across all users
// that belongs to a cyclical category, for the daily reset sweep.
func (r *repository) FindCompletedCyclicalTasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	err := r.db.WithContext(ctx).
		Where("completed = ? AND category <> ?", true, CategoryNonPrinting).
		Find(&tasks).Error
	return tasks, err
}

func (r *repository) CreateLog(ctx context.Context, log *Log) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *repository) FindLogs(ctx context.Context, filter LogFilter) ([]Log, int64, error) {
	var logs []Log
	var total int64
	query := r.db.WithContext(ctx).Model(&Log{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.TaskID != nil {
		query = query.Where("task_id = ?", *filter.TaskID)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.From != nil {
		query = query.Where("completed_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("completed_at <= ?", *filter.To)
	}

	err := query.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	if filter.PageSize == 0 {
		filter.PageSize = 10000
	}

	err = query.Order("completed_at DESC").
		Offset(filter.Page * filter.PageSize).
		Limit(filter.PageSize).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
