package preset

import (
	"context"
	"errors"

	"github.com/cobraflex/printercare/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPresetNotFound     = errors.New("preset not found")
	ErrAssignmentNotFound = errors.New("preset assignment not found")
	ErrAlreadyAssigned    = errors.New("printer already has a preset assigned")
)

// Repository defines the interface for preset persistence operations
type Repository interface {
	Create(ctx context.Context, p *TaskPreset) error
	FindByID(ctx context.Context, id uuid.UUID) (*TaskPreset, error)
	FindAll(ctx context.Context) ([]TaskPreset, error)
	Update(ctx context.Context, p *TaskPreset) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreateAssignment(ctx context.Context, a *PresetAssignment) error
	FindAssignment(ctx context.Context, userEmail, serialNumber string) (*PresetAssignment, error)
	FindAssignments(ctx context.Context) ([]PresetAssignment, error)
	DeleteAssignment(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *TaskPreset) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*TaskPreset, error) {
	var p TaskPreset
	result := r.db.WithContext(ctx).First(&p, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPresetNotFound
		}
		return nil, result.Error
	}
	return &p, nil
}

func (r *repository) FindAll(ctx context.Context) ([]TaskPreset, error) {
	var presets []TaskPreset
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&presets).Error
	return presets, err
}

func (r *repository) Update(ctx context.Context, p *TaskPreset) error {
	result := r.db.WithContext(ctx).Save(p)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPresetNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&TaskPreset{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPresetNotFound
	}
	return nil
}

func (r *repository) CreateAssignment(ctx context.Context, a *PresetAssignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindAssignment(ctx context.Context, userEmail, serialNumber string) (*PresetAssignment, error) {
	var a PresetAssignment
	result := r.db.WithContext(ctx).
		Where("user_email = ? AND serial_number = ?", userEmail, serialNumber).
		First(&a)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, result.Error
	}
	return &a, nil
}

func (r *repository) FindAssignments(ctx context.Context) ([]PresetAssignment, error) {
	var assignments []PresetAssignment
	err := r.db.WithContext(ctx).Order("assigned_at DESC").Find(&assignments).Error
	return assignments, err
}

func (r *repository) DeleteAssignment(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&PresetAssignment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}
