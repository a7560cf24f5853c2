package preset

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/cobraflex/printercare/internal/domain/events"
	"github.com/cobraflex/printercare/internal/infrastructure/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type Service interface {
	CreatePreset(ctx context.Context, input CreatePresetInput) (*TaskPreset, error)
	GetPreset(ctx context.Context, id uuid.UUID) (*TaskPreset, error)
	ListPresets(ctx context.Context) ([]TaskPreset, error)
	UpdatePreset(ctx context.Context, id uuid.UUID, input UpdatePresetInput) (*TaskPreset, error)
	DeletePreset(ctx context.Context, id uuid.UUID) error

	Assign(ctx context.Context, input AssignInput) (*PresetAssignment, error)
	Unassign(ctx context.Context, id uuid.UUID) error
	ListAssignments(ctx context.Context) ([]PresetAssignment, error)

	// AssignedTaskIDs returns the task slugs the printer is restricted to,
	// or ok=false when no preset is assigned.
	AssignedTaskIDs(ctx context.Context, userEmail, serialNumber string) ([]string, bool, error)
}

type service struct {
	repo   Repository
	redis  *cache.RedisClient
	logger *zap.Logger
}

func NewService(repo Repository, redis *cache.RedisClient, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		redis:  redis,
		logger: logger,
	}
}

func encodeTaskIDs(ids []string) (datatypes.JSON, error) {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func (s *service) CreatePreset(ctx context.Context, input CreatePresetInput) (*TaskPreset, error) {
	taskIDs, err := encodeTaskIDs(input.TaskIDs)
	if err != nil {
		return nil, err
	}

	p := &TaskPreset{
		Name:        input.Name,
		Description: input.Description,
		TaskIDs:     taskIDs,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.publishPresetEvent(ctx, p.ID, "preset_created")
	return p, nil
}

func (s *service) GetPreset(ctx context.Context, id uuid.UUID) (*TaskPreset, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListPresets(ctx context.Context) ([]TaskPreset, error) {
	return s.repo.FindAll(ctx)
}

func (s *service) UpdatePreset(ctx context.Context, id uuid.UUID, input UpdatePresetInput) (*TaskPreset, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.TaskIDs != nil {
		taskIDs, err := encodeTaskIDs(*input.TaskIDs)
		if err != nil {
			return nil, err
		}
		p.TaskIDs = taskIDs
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.publishPresetEvent(ctx, p.ID, "preset_updated")
	return p, nil
}

func (s *service) DeletePreset(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publishPresetEvent(ctx, id, "preset_deleted")
	return nil
}

func (s *service) Assign(ctx context.Context, input AssignInput) (*PresetAssignment, error) {
	p, err := s.repo.FindByID(ctx, input.PresetID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindAssignment(ctx, input.UserEmail, input.SerialNumber)
	if err != nil && !errors.Is(err, ErrAssignmentNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyAssigned
	}

	a := &PresetAssignment{
		UserEmail:    input.UserEmail,
		SerialNumber: input.SerialNumber,
		PresetID:     p.ID,
		PresetName:   p.Name,
		AssignedAt:   time.Now(),
	}
	if err := s.repo.CreateAssignment(ctx, a); err != nil {
		return nil, err
	}

	s.publishPresetEvent(ctx, p.ID, "preset_assigned")
	return a, nil
}

func (s *service) Unassign(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteAssignment(ctx, id)
}

func (s *service) ListAssignments(ctx context.Context) ([]PresetAssignment, error) {
	return s.repo.FindAssignments(ctx)
}

func (s *service) AssignedTaskIDs(ctx context.Context, userEmail, serialNumber string) ([]string, bool, error) {
	a, err := s.repo.FindAssignment(ctx, userEmail, serialNumber)
	if err != nil {
		if errors.Is(err, ErrAssignmentNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	p, err := s.repo.FindByID(ctx, a.PresetID)
	if err != nil {
		// Assignment pointing at a deleted preset behaves as no assignment.
		if errors.Is(err, ErrPresetNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	ids, err := p.TaskIDList()
	if err != nil {
		return nil, false, err
	}
	return ids, true, nil
}

func (s *service) publishPresetEvent(ctx context.Context, presetID uuid.UUID, action string) {
	if s.redis == nil {
		return
	}

	event := &events.DashboardEvent{
		EventType: events.EventTypePresetUpdate,
		EntityID:  presetID.String(),
		Timestamp: time.Now().UTC(),
		Details: map[string]interface{}{
			"action": action,
		},
	}
	if err := s.redis.PublishDashboardEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish preset event", zap.Error(err))
	}
}
