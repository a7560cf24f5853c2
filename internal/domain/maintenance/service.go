package maintenance

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cobraflex/printercare/internal/domain/awards"
	"github.com/cobraflex/printercare/internal/domain/events"
	"github.com/cobraflex/printercare/internal/domain/preset"
	"github.com/cobraflex/printercare/internal/domain/user"
	"github.com/cobraflex/printercare/internal/infrastructure/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ToggleResult is what a completion toggle returns to the API layer.
type ToggleResult struct {
	Task      TaskView       `json:"task"`
	NewAwards []awards.Award `json:"new_awards"`
}

type Service interface {
	// ListTasks returns the user's checklist, seeding it from the catalog on
	// first access and decorating each cyclical task with due information.
	ListTasks(ctx context.Context, userID uuid.UUID) ([]TaskView, error)
	AddTask(ctx context.Context, input CreateTaskInput) (*Task, error)
	// ToggleTask flips a task's completion state. Completing a task appends a
	// log entry and runs the award evaluation; un-completing does neither.
	ToggleTask(ctx context.Context, taskID string, input ToggleTaskInput) (*ToggleResult, error)
	// ResetElapsedCycles flips completed cyclical tasks back to incomplete
	// once their cycle boundary has passed. Called by the daily scheduler.
	ResetElapsedCycles(ctx context.Context) (int64, error)
	ListLogs(ctx context.Context, filter LogFilter) ([]Log, int64, error)
	ExportLogs(ctx context.Context, filter LogFilter, format string) ([]byte, string, error)
}

type service struct {
	repo      Repository
	users     user.Service
	presets   preset.Service
	awardsSvc awards.Service
	redis     *cache.RedisClient
	logger    *zap.Logger
}

func NewService(repo Repository, users user.Service, presets preset.Service, awardsSvc awards.Service, redis *cache.RedisClient, logger *zap.Logger) Service {
	return &service{
		repo:      repo,
		users:     users,
		presets:   presets,
		awardsSvc: awardsSvc,
		redis:     redis,
		logger:    logger,
	}
}

func (s *service) ListTasks(ctx context.Context, userID uuid.UUID) ([]TaskView, error) {
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountTasksByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		if err := s.seedTasks(ctx, u); err != nil {
			return nil, err
		}
	}

	tasks, err := s.repo.FindTasksByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, s.decorate(t, u.PurchaseDate))
	}
	return views, nil
}

// seedTasks materializes the default catalog for a new user, narrowed to the
// assigned preset when one exists for the user's printer.
func (s *service) seedTasks(ctx context.Context, u *user.User) error {
	assigned, hasPreset, err := s.presets.AssignedTaskIDs(ctx, u.Email, u.SerialNumber)
	if err != nil {
		return err
	}

	allowed := make(map[string]bool, len(assigned))
	for _, id := range assigned {
		allowed[id] = true
	}

	var tasks []Task
	for _, entry := range DefaultCatalog {
		if hasPreset && !allowed[entry.ID] {
			continue
		}
		tasks = append(tasks, entry.Materialize(u.ID))
	}

	if err := s.repo.CreateTasks(ctx, tasks); err != nil {
		return err
	}

	s.logger.Info("Seeded maintenance checklist",
		zap.String("user_id", u.ID.String()),
		zap.Int("task_count", len(tasks)),
		zap.Bool("preset_applied", hasPreset),
	)
	return nil
}

func (s *service) decorate(t Task, purchase time.Time) TaskView {
	view := TaskView{Task: t}
	if !t.Category.HasCycle() {
		return view
	}

	freq, err := t.Category.Frequency()
	if err != nil {
		return view
	}

	due := NextDue(purchase, freq, t.LastCompleted)
	view.NextDue = &due
	view.IsDue = IsDue(purchase, freq, t.LastCompleted)
	return view
}

func (s *service) AddTask(ctx context.Context, input CreateTaskInput) (*Task, error) {
	if !ValidCategory(string(input.Category)) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, input.Category)
	}
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	task := &Task{
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Custom:      true,
	}
	if err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, err
	}

	s.publishTaskEvent(ctx, input.UserID, task.ID, "task_added")
	return task, nil
}

func (s *service) ToggleTask(ctx context.Context, taskID string, input ToggleTaskInput) (*ToggleResult, error) {
	u, err := s.users.GetUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	// Snapshot before any mutation; the award evaluator is contracted to see
	// the pre-toggle state of the full list.
	tasks, err := s.repo.FindTasksByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	var target *Task
	for i := range tasks {
		if tasks[i].ID == taskID {
			target = &tasks[i]
			break
		}
	}
	if target == nil {
		return nil, ErrTaskNotFound
	}

	now := time.Now()

	if target.Completed {
		// Un-toggle: no log entry, no award evaluation.
		target.Completed = false
		target.LastCompleted = nil
		target.CompletedBy = ""
		target.Notes = ""
		if err := s.repo.UpdateTask(ctx, target); err != nil {
			return nil, err
		}

		s.publishTaskEvent(ctx, input.UserID, taskID, "task_unchecked")
		return &ToggleResult{Task: s.decorate(*target, u.PurchaseDate)}, nil
	}

	snapshot := make([]awards.TaskSnapshot, 0, len(tasks))
	for _, t := range tasks {
		snapshot = append(snapshot, awards.TaskSnapshot{
			ID:        t.ID,
			Category:  string(t.Category),
			Completed: t.Completed,
		})
	}

	completedBy := input.CompletedBy
	if completedBy == "" {
		completedBy = u.OperatorName
	}

	target.Completed = true
	target.LastCompleted = &now
	target.CompletedBy = completedBy
	target.Notes = input.Notes
	if err := s.repo.UpdateTask(ctx, target); err != nil {
		return nil, err
	}

	entry := &Log{
		UserID:       input.UserID,
		TaskID:       target.ID,
		TaskTitle:    target.Title,
		Category:     target.Category,
		CompletedAt:  now,
		CompletedBy:  completedBy,
		SerialNumber: u.SerialNumber,
		Notes:        input.Notes,
	}
	if err := s.repo.CreateLog(ctx, entry); err != nil {
		return nil, err
	}

	newAwards, err := s.awardsSvc.HandleTaskCompleted(ctx, input.UserID, snapshot, taskID, now)
	if err != nil {
		return nil, err
	}

	s.publishTaskEvent(ctx, input.UserID, taskID, "task_completed")

	return &ToggleResult{
		Task:      s.decorate(*target, u.PurchaseDate),
		NewAwards: newAwards,
	}, nil
}

func (s *service) ResetElapsedCycles(ctx context.Context) (int64, error) {
	tasks, err := s.repo.FindCompletedCyclicalTasks(ctx)
	if err != nil {
		return 0, err
	}
	if len(tasks) == 0 {
		return 0, nil
	}

	seen := make(map[uuid.UUID]bool)
	var userIDs []uuid.UUID
	for _, t := range tasks {
		if !seen[t.UserID] {
			seen[t.UserID] = true
			userIDs = append(userIDs, t.UserID)
		}
	}

	owners, err := s.users.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return 0, err
	}
	purchaseByUser := make(map[uuid.UUID]time.Time, len(owners))
	for _, o := range owners {
		purchaseByUser[o.ID] = o.PurchaseDate
	}

	var reset int64
	for _, t := range tasks {
		purchase, ok := purchaseByUser[t.UserID]
		if !ok {
			continue
		}
		freq, err := t.Category.Frequency()
		if err != nil {
			continue
		}
		if !ShouldReset(purchase, freq, t.LastCompleted) {
			continue
		}
		if err := s.repo.ResetTask(ctx, t.ID, t.UserID); err != nil {
			s.logger.Error("Failed to reset task at cycle boundary",
				zap.String("task_id", t.ID),
				zap.String("user_id", t.UserID.String()),
				zap.Error(err),
			)
			continue
		}
		reset++
	}

	return reset, nil
}

func (s *service) ListLogs(ctx context.Context, filter LogFilter) ([]Log, int64, error) {
	return s.repo.FindLogs(ctx, filter)
}

func (s *service) ExportLogs(ctx context.Context, filter LogFilter, format string) ([]byte, string, error) {
	logs, _, err := s.repo.FindLogs(ctx, filter)
	if err != nil {
		return nil, "", err
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(logs, "", "  ")
		if err != nil {
			return nil, "", err
		}
		return data, "application/json", nil
	case "csv", "":
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		header := []string{"id", "task_id", "task_title", "category", "completed_at", "completed_by", "serial_number", "notes"}
		if err := w.Write(header); err != nil {
			return nil, "", err
		}
		for _, l := range logs {
			row := []string{
				l.ID.String(),
				l.TaskID,
				l.TaskTitle,
				string(l.Category),
				l.CompletedAt.Format(time.RFC3339),
				l.CompletedBy,
				l.SerialNumber,
				l.Notes,
			}
			if err := w.Write(row); err != nil {
				return nil, "", err
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "text/csv", nil
	default:
		return nil, "", fmt.Errorf("%w: unsupported export format %q", ErrInvalidInput, format)
	}
}

func (s *service) publishTaskEvent(ctx context.Context, userID uuid.UUID, taskID, action string) {
	if s.redis == nil {
		return
	}

	if err := s.redis.InvalidateCache(ctx, "task", userID); err != nil {
		s.logger.Error("Failed to invalidate task cache", zap.Error(err))
	}

	event := &events.DashboardEvent{
		EventType: events.EventTypeTaskUpdate,
		UserID:    userID,
		EntityID:  taskID,
		Timestamp: time.Now().UTC(),
		Details: map[string]interface{}{
			"action": action,
		},
	}
	if err := s.redis.PublishDashboardEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish task event", zap.Error(err))
	}
}
