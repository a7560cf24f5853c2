package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cobraflex/printercare/internal/domain/awards"
	"github.com/cobraflex/printercare/internal/domain/maintenance"
	"github.com/cobraflex/printercare/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubMaintenanceService struct {
	resets atomic.Int64
}

func (s *stubMaintenanceService) ListTasks(ctx context.Context, userID uuid.UUID) ([]maintenance.TaskView, error) {
	return nil, nil
}

func (s *stubMaintenanceService) AddTask(ctx context.Context, input maintenance.CreateTaskInput) (*maintenance.Task, error) {
	return nil, nil
}

func (s *stubMaintenanceService) ToggleTask(ctx context.Context, taskID string, input maintenance.ToggleTaskInput) (*maintenance.ToggleResult, error) {
	return nil, nil
}

func (s *stubMaintenanceService) ResetElapsedCycles(ctx context.Context) (int64, error) {
	s.resets.Add(1)
	return 0, nil
}

func (s *stubMaintenanceService) ListLogs(ctx context.Context, filter maintenance.LogFilter) ([]maintenance.Log, int64, error) {
	return nil, 0, nil
}

func (s *stubMaintenanceService) ExportLogs(ctx context.Context, filter maintenance.LogFilter, format string) ([]byte, string, error) {
	return nil, "", nil
}

type stubAwardsService struct {
	resets atomic.Int64
}

func (s *stubAwardsService) HandleTaskCompleted(ctx context.Context, userID uuid.UUID, snapshot []awards.TaskSnapshot, completedTaskID string, at time.Time) ([]awards.Award, error) {
	return nil, nil
}

func (s *stubAwardsService) GetSummary(ctx context.Context, userID uuid.UUID) (*awards.Summary, error) {
	return nil, nil
}

func (s *stubAwardsService) GetEarned(ctx context.Context, userID uuid.UUID) ([]awards.UserAward, error) {
	return nil, nil
}

func (s *stubAwardsService) GetStreak(ctx context.Context, userID uuid.UUID) (awards.UserStreak, error) {
	return awards.UserStreak{}, nil
}

func (s *stubAwardsService) ResetBrokenStreaks(ctx context.Context) (int64, error) {
	s.resets.Add(1)
	return 0, nil
}

func TestRunLoopSweepsAtFirstDeadline(t *testing.T) {
	m := &stubMaintenanceService{}
	a := &stubAwardsService{}
	s := NewScheduler(m, a, logger.NewLogger())

	go s.runLoop(10*time.Millisecond, time.Hour)

	// The sweep must run right after the initial delay, not one interval later.
	require.Eventually(t, func() bool {
		return m.resets.Load() == 1 && a.resets.Load() == 1
	}, 2*time.Second, 10*time.Millisecond)
}
