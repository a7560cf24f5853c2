package maintenance

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/cobraflex/printercare/internal/domain/awards"
	"github.com/cobraflex/printercare/internal/domain/preset"
	"github.com/cobraflex/printercare/internal/domain/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Mock repository for testing
type mockRepository struct {
	tasks    []Task
	logs     []Log
	resetIDs []string
}

func (m *mockRepository) CreateTask(ctx context.Context, task *Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	m.tasks = append(m.tasks, *task)
	return nil
}

func (m *mockRepository) CreateTasks(ctx context.Context, tasks []Task) error {
	m.tasks = append(m.tasks, tasks...)
	return nil
}

func (m *mockRepository) FindTask(ctx context.Context, id string, userID uuid.UUID) (*Task, error) {
	for i := range m.tasks {
		if m.tasks[i].ID == id && m.tasks[i].UserID == userID {
			t := m.tasks[i]
			return &t, nil
		}
	}
	return nil, ErrTaskNotFound
}

func (m *mockRepository) FindTasksByUser(ctx context.Context, userID uuid.UUID) ([]Task, error) {
	var out []Task
	for _, t := range m.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockRepository) CountTasksByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, t := range m.tasks {
		if t.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *mockRepository) UpdateTask(ctx context.Context, task *Task) error {
	for i := range m.tasks {
		if m.tasks[i].ID == task.ID && m.tasks[i].UserID == task.UserID {
			m.tasks[i] = *task
			return nil
		}
	}
	return ErrTaskNotFound
}

func (m *mockRepository) DeleteTask(ctx context.Context, id string, userID uuid.UUID) error {
	for i := range m.tasks {
		if m.tasks[i].ID == id && m.tasks[i].UserID == userID {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return ErrTaskNotFound
}

func (m *mockRepository) ResetTask(ctx context.Context, id string, userID uuid.UUID) error {
	for i := range m.tasks {
		if m.tasks[i].ID == id && m.tasks[i].UserID == userID {
			m.tasks[i].Completed = false
			m.tasks[i].CompletedBy = ""
			m.tasks[i].Notes = ""
			m.resetIDs = append(m.resetIDs, id)
			return nil
		}
	}
	return ErrTaskNotFound
}

func (m *mockRepository) FindCompletedCyclicalTasks(ctx context.Context) ([]Task, error) {
	var out []Task
	for _, t := range m.tasks {
		if t.Completed && t.Category != CategoryNonPrinting {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockRepository) CreateLog(ctx context.Context, log *Log) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	m.logs = append(m.logs, *log)
	return nil
}

func (m *mockRepository) FindLogs(ctx context.Context, filter LogFilter) ([]Log, int64, error) {
	var out []Log
	for _, l := range m.logs {
		if filter.UserID != nil && l.UserID != *filter.UserID {
			continue
		}
		if filter.Category != nil && l.Category != *filter.Category {
			continue
		}
		out = append(out, l)
	}
	return out, int64(len(out)), nil
}

// Mock user service returning a single fixed account
type mockUserService struct {
	account *user.User
}

func (m *mockUserService) Register(ctx context.Context, input user.RegisterInput) (*user.User, error) {
	return nil, nil
}

func (m *mockUserService) Login(ctx context.Context, input user.LoginInput) (*user.User, *user.UserSession, error) {
	return nil, nil, nil
}

func (m *mockUserService) Logout(ctx context.Context, userID uuid.UUID) error { return nil }

func (m *mockUserService) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if m.account != nil && m.account.ID == id {
		return m.account, nil
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserService) GetUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]user.User, error) {
	if m.account == nil {
		return nil, nil
	}
	return []user.User{*m.account}, nil
}

func (m *mockUserService) ListUsers(ctx context.Context, filter user.Filter) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (m *mockUserService) UpdateProfile(ctx context.Context, id uuid.UUID, input user.UpdateProfileInput) (*user.User, error) {
	return nil, nil
}

func (m *mockUserService) GetUserSessions(ctx context.Context, userID uuid.UUID) ([]user.UserSession, error) {
	return nil, nil
}

// Mock preset service with a configurable assignment
type mockPresetService struct {
	assigned  []string
	hasPreset bool
}

func (m *mockPresetService) CreatePreset(ctx context.Context, input preset.CreatePresetInput) (*preset.TaskPreset, error) {
	return nil, nil
}

func (m *mockPresetService) GetPreset(ctx context.Context, id uuid.UUID) (*preset.TaskPreset, error) {
	return nil, nil
}

func (m *mockPresetService) ListPresets(ctx context.Context) ([]preset.TaskPreset, error) {
	return nil, nil
}

func (m *mockPresetService) UpdatePreset(ctx context.Context, id uuid.UUID, input preset.UpdatePresetInput) (*preset.TaskPreset, error) {
	return nil, nil
}

func (m *mockPresetService) DeletePreset(ctx context.Context, id uuid.UUID) error { return nil }

func (m *mockPresetService) Assign(ctx context.Context, input preset.AssignInput) (*preset.PresetAssignment, error) {
	return nil, nil
}

func (m *mockPresetService) Unassign(ctx context.Context, id uuid.UUID) error { return nil }

func (m *mockPresetService) ListAssignments(ctx context.Context) ([]preset.PresetAssignment, error) {
	return nil, nil
}

func (m *mockPresetService) AssignedTaskIDs(ctx context.Context, userEmail, serialNumber string) ([]string, bool, error) {
	return m.assigned, m.hasPreset, nil
}

// Mock awards service recording the completion call
type mockAwardsService struct {
	called          bool
	snapshot        []awards.TaskSnapshot
	completedTaskID string
	grant           []awards.Award
}

func (m *mockAwardsService) HandleTaskCompleted(ctx context.Context, userID uuid.UUID, snapshot []awards.TaskSnapshot, completedTaskID string, at time.Time) ([]awards.Award, error) {
	m.called = true
	m.snapshot = snapshot
	m.completedTaskID = completedTaskID
	return m.grant, nil
}

func (m *mockAwardsService) GetSummary(ctx context.Context, userID uuid.UUID) (*awards.Summary, error) {
	return nil, nil
}

func (m *mockAwardsService) GetEarned(ctx context.Context, userID uuid.UUID) ([]awards.UserAward, error) {
	return nil, nil
}

func (m *mockAwardsService) GetStreak(ctx context.Context, userID uuid.UUID) (awards.UserStreak, error) {
	return awards.UserStreak{}, nil
}

func (m *mockAwardsService) ResetBrokenStreaks(ctx context.Context) (int64, error) { return 0, nil }

func testAccount() *user.User {
	return &user.User{
		ID:           uuid.New(),
		CompanyName:  "Acme Signs",
		SerialNumber: "CF-1001",
		OperatorName: "Jordan",
		Email:        "jordan@acmesigns.example",
		PurchaseDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newTestService(repo *mockRepository, account *user.User, presets *mockPresetService, awardsSvc *mockAwardsService) Service {
	return NewService(repo, &mockUserService{account: account}, presets, awardsSvc, nil, zap.NewNop())
}

func TestListTasksSeedsDefaultCatalog(t *testing.T) {
	repo := &mockRepository{}
	account := testAccount()
	svc := newTestService(repo, account, &mockPresetService{}, &mockAwardsService{})

	views, err := svc.ListTasks(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Len(t, views, len(DefaultCatalog))

	byID := make(map[string]TaskView, len(views))
	for _, v := range views {
		byID[v.ID] = v
	}

	daily, ok := byID["daily-1"]
	require.True(t, ok, "catalog daily task should be seeded")
	assert.NotNil(t, daily.NextDue, "cyclical tasks carry a due date")
	assert.False(t, daily.Custom)

	nonPrinting, ok := byID["non-printing-1"]
	require.True(t, ok)
	assert.Nil(t, nonPrinting.NextDue, "non-printing tasks have no cycle")
	assert.False(t, nonPrinting.IsDue)
}

func TestListTasksSeedsOnlyOnce(t *testing.T) {
	repo := &mockRepository{}
	account := testAccount()
	svc := newTestService(repo, account, &mockPresetService{}, &mockAwardsService{})

	_, err := svc.ListTasks(context.Background(), account.ID)
	require.NoError(t, err)
	views, err := svc.ListTasks(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Len(t, views, len(DefaultCatalog))
}

func TestListTasksAppliesAssignedPreset(t *testing.T) {
	repo := &mockRepository{}
	account := testAccount()
	presets := &mockPresetService{
		assigned:  []string{"daily-1", "weekly-1"},
		hasPreset: true,
	}
	svc := newTestService(repo, account, presets, &mockAwardsService{})

	views, err := svc.ListTasks(context.Background(), account.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "daily-1", views[0].ID)
	assert.Equal(t, "weekly-1", views[1].ID)
}

func TestAddTaskValidation(t *testing.T) {
	repo := &mockRepository{}
	account := testAccount()
	svc := newTestService(repo, account, &mockPresetService{}, &mockAwardsService{})

	_, err := svc.AddTask(context.Background(), CreateTaskInput{
		Title:    "Clean encoder strip",
		Category: Category("hourly"),
		UserID:   account.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddTask(context.Background(), CreateTaskInput{
		Category: CategoryDaily,
		UserID:   account.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	task, err := svc.AddTask(context.Background(), CreateTaskInput{
		Title:    "Clean encoder strip",
		Category: CategoryDaily,
		UserID:   account.ID,
	})
	require.NoError(t, err)
	assert.True(t, task.Custom)
	assert.NotEmpty(t, task.ID)
}

func TestToggleTaskCompletion(t *testing.T) {
	repo := &mockRepository{}
	account := testAccount()
	awardsSvc := &mockAwardsService{
		grant: []awards.Award{{ID: "first-task", Points: 10}},
	}
	svc := newTestService(repo, account, &mockPresetService{}, awardsSvc)

	_, err := svc.ListTasks(context.Background(), account.ID)
	require.NoError(t, err)

	result, err := svc.ToggleTask(context.Background(), "daily-1", ToggleTaskInput{
		UserID: account.ID,
		Notes:  "wiped with lint-free cloth",
	})
	require.NoError(t, err)

	assert.True(t, result.Task.Completed)
	require.NotNil(t, result.Task.LastCompleted)
	assert.Equal(t, account.OperatorName, result.Task.CompletedBy, "falls back to the operator name")
	require.Len(t, result.NewAwards, 1)
	assert.Equal(t, "first-task", result.NewAwards[0].ID)

	require.Len(t, repo.logs, 1)
	entry := repo.logs[0]
	assert.Equal(t, "daily-1", entry.TaskID)
	assert.Equal(t, account.SerialNumber, entry.SerialNumber)
	assert.Equal(t, "wiped with lint-free cloth", entry.Notes)

	// The evaluator must see the pre-toggle state of the list.
	require.True(t, awardsSvc.called)
	assert.Equal(t, "daily-1", awardsSvc.completedTaskID)
	for _, snap := range awardsSvc.snapshot {
		if snap.ID == "daily-1" {
			assert.False(t, snap.Completed)
		}
	}
}

func TestToggleTaskUncheck(t *testing.T) {
	repo := &mockRepository{}
	account := testAccount()
	awardsSvc := &mockAwardsService{}
	svc := newTestService(repo, account, &mockPresetService{}, awardsSvc)

	completedAt := time.Now().Add(-time.Hour)
	repo.tasks = append(repo.tasks, Task{
		ID:            "daily-1",
		UserID:        account.ID,
		Title:         "Check ink levels",
		Category:      CategoryDaily,
		Completed:     true,
		LastCompleted: &completedAt,
		CompletedBy:   "Jordan",
		Notes:         "ok",
	})

	result, err := svc.ToggleTask(context.Background(), "daily-1", ToggleTaskInput{UserID: account.ID})
	require.NoError(t, err)

	assert.False(t, result.Task.Completed)
	assert.Nil(t, result.Task.LastCompleted)
	assert.Empty(t, result.Task.CompletedBy)
	assert.Empty(t, result.Task.Notes)
	assert.Empty(t, result.NewAwards)

	assert.Empty(t, repo.logs, "un-checking writes no log entry")
	assert.False(t, awardsSvc.called, "un-checking runs no award evaluation")
}

func TestToggleTaskUnknownID(t *testing.T) {
	repo := &mockRepository{}
	account := testAccount()
	svc := newTestService(repo, account, &mockPresetService{}, &mockAwardsService{})

	_, err := svc.ToggleTask(context.Background(), "no-such-task", ToggleTaskInput{UserID: account.ID})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestResetElapsedCycles(t *testing.T) {
	repo := &mockRepository{}
	account := testAccount()
	svc := newTestService(repo, account, &mockPresetService{}, &mockAwardsService{})

	yesterday := time.Now().AddDate(0, 0, -1)
	today := time.Now()

	repo.tasks = []Task{
		{ID: "daily-1", UserID: account.ID, Category: CategoryDaily, Completed: true, LastCompleted: &yesterday},
		{ID: "daily-2", UserID: account.ID, Category: CategoryDaily, Completed: true, LastCompleted: &today},
		{ID: "weekly-1", UserID: account.ID, Category: CategoryWeekly, Completed: true, LastCompleted: &yesterday},
	}

	reset, err := svc.ResetElapsedCycles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), reset)
	assert.Equal(t, []string{"daily-1"}, repo.resetIDs)

	// The daily task completed yesterday is incomplete again; its anchor
	// completion survives the reset.
	task, err := repo.FindTask(context.Background(), "daily-1", account.ID)
	require.NoError(t, err)
	assert.False(t, task.Completed)
	assert.NotNil(t, task.LastCompleted)
}

func TestExportLogs(t *testing.T) {
	repo := &mockRepository{}
	account := testAccount()
	svc := newTestService(repo, account, &mockPresetService{}, &mockAwardsService{})

	repo.logs = []Log{
		{
			ID:           uuid.New(),
			UserID:       account.ID,
			TaskID:       "daily-1",
			TaskTitle:    "Check ink levels",
			Category:     CategoryDaily,
			CompletedAt:  time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
			CompletedBy:  "Jordan",
			SerialNumber: account.SerialNumber,
			Notes:        "topped up cyan",
		},
	}
	filter := LogFilter{UserID: &account.ID}

	data, contentType, err := svc.ExportLogs(context.Background(), filter, "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "task_title")
	assert.Contains(t, lines[1], "Check ink levels")
	assert.Contains(t, lines[1], "CF-1001")

	data, contentType, err = svc.ExportLogs(context.Background(), filter, "json")
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)
	assert.Contains(t, string(data), "\"daily-1\"")

	_, _, err = svc.ExportLogs(context.Background(), filter, "xml")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
