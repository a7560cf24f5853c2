package awards

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRepository struct {
	created   []UserAward
	earned    map[string]bool
	streak    *UserStreak
	createErr error
}

func (m *mockRepository) CreateUserAward(ctx context.Context, award *UserAward) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, *award)
	return nil
}

func (m *mockRepository) FindUserAwards(ctx context.Context, userID uuid.UUID) ([]UserAward, error) {
	return m.created, nil
}

func (m *mockRepository) FindEarnedAwardIDs(ctx context.Context, userID uuid.UUID) (map[string]bool, error) {
	if m.earned == nil {
		return map[string]bool{}, nil
	}
	return m.earned, nil
}

func (m *mockRepository) FindStreak(ctx context.Context, userID uuid.UUID) (*UserStreak, error) {
	if m.streak == nil {
		return nil, ErrStreakNotFound
	}
	return m.streak, nil
}

func (m *mockRepository) SaveStreak(ctx context.Context, streak *UserStreak) error {
	m.streak = streak
	return nil
}

func (m *mockRepository) FindActiveStreaks(ctx context.Context) ([]UserStreak, error) {
	return nil, nil
}

func (m *mockRepository) ZeroStreak(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func TestHandleTaskCompletedPersistsNewAwards(t *testing.T) {
	repo := &mockRepository{}
	svc := NewService(repo, nil, zap.NewNop())
	userID := uuid.New()

	granted, err := svc.HandleTaskCompleted(context.Background(), userID, snapshotOf(0, 5), "weekly-1", day(2024, time.May, 1))
	require.NoError(t, err)

	require.Len(t, granted, 1)
	assert.Equal(t, "first-task", granted[0].ID)

	require.Len(t, repo.created, 1)
	assert.Equal(t, userID, repo.created[0].UserID)
	assert.Equal(t, "first-task", repo.created[0].AwardID)
	assert.Equal(t, "weekly-1", repo.created[0].TaskID)
}

func TestHandleTaskCompletedToleratesConcurrentDuplicate(t *testing.T) {
	// Two in-flight toggles can both evaluate the same award; the loser of the
	// insert race gets ErrAlreadyEarned and must not fail the whole toggle.
	repo := &mockRepository{createErr: ErrAlreadyEarned}
	svc := NewService(repo, nil, zap.NewNop())

	granted, err := svc.HandleTaskCompleted(context.Background(), uuid.New(), snapshotOf(0, 5), "weekly-1", day(2024, time.May, 1))
	require.NoError(t, err)
	assert.Empty(t, granted)
	assert.Empty(t, repo.created)
}
