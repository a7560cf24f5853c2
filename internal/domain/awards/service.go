package awards

import (
	"context"
	"errors"
	"time"

	"github.com/cobraflex/printercare/internal/domain/events"
	"github.com/cobraflex/printercare/internal/infrastructure/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Summary is the full gamification state for one user.
type Summary struct {
	Catalog     []Award     `json:"catalog"`
	Earned      []UserAward `json:"earned"`
	TotalPoints int         `json:"total_points"`
	Streak      UserStreak  `json:"streak"`
}

type Service interface {
	// HandleTaskCompleted runs the completion side of the gamification layer:
	// bump the day streak, evaluate the catalog against the pre-toggle task
	// snapshot, persist newly earned awards, and return them in catalog order.
	HandleTaskCompleted(ctx context.Context, userID uuid.UUID, snapshot []TaskSnapshot, completedTaskID string, at time.Time) ([]Award, error)
	GetSummary(ctx context.Context, userID uuid.UUID) (*Summary, error)
	GetEarned(ctx context.Context, userID uuid.UUID) ([]UserAward, error)
	GetStreak(ctx context.Context, userID uuid.UUID) (UserStreak, error)
	ResetBrokenStreaks(ctx context.Context) (int64, error)
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

func (s *service) HandleTaskCompleted(ctx context.Context, userID uuid.UUID, snapshot []TaskSnapshot, completedTaskID string, at time.Time) ([]Award, error) {
	streak, err := s.bumpStreak(ctx, userID, at)
	if err != nil {
		return nil, err
	}

	earned, err := s.repo.FindEarnedAwardIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	newAwards := Evaluate(snapshot, completedTaskID, earned, streak.CurrentStreak)

	granted := make([]Award, 0, len(newAwards))
	for _, award := range newAwards {
		record := &UserAward{
			UserID:   userID,
			AwardID:  award.ID,
			EarnedAt: at,
			TaskID:   completedTaskID,
		}
		if err := s.repo.CreateUserAward(ctx, record); err != nil {
			if errors.Is(err, ErrAlreadyEarned) {
				// A concurrent toggle persisted it first; nothing new to report
				continue
			}
			return nil, err
		}
		granted = append(granted, award)

		event := &events.DashboardEvent{
			EventType: events.EventTypeAwardEarned,
			UserID:    userID,
			EntityID:  award.ID,
			Timestamp: at.UTC(),
			Details: map[string]interface{}{
				"award_id": award.ID,
				"name":     award.Name,
				"points":   award.Points,
				"task_id":  completedTaskID,
			},
		}
		if s.redis != nil {
			if err := s.redis.PublishDashboardEvent(ctx, event); err != nil {
				s.logger.Error("Failed to publish award event", zap.Error(err))
			}
		}
	}

	return granted, nil
}

// bumpStreak advances the user's day streak for a completion at the given
// time, creating the streak row on first activity.
func (s *service) bumpStreak(ctx context.Context, userID uuid.UUID, at time.Time) (UserStreak, error) {
	current, err := s.repo.FindStreak(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrStreakNotFound) {
			return UserStreak{}, err
		}
		current = &UserStreak{UserID: userID}
	}

	if current.LastActiveDay != nil && sameDay(*current.LastActiveDay, at) {
		return *current, nil
	}

	bumped := BumpStreak(*current, at)
	if err := s.repo.SaveStreak(ctx, &bumped); err != nil {
		return UserStreak{}, err
	}

	event := &events.DashboardEvent{
		EventType: events.EventTypeStreakUpdate,
		UserID:    userID,
		Timestamp: at.UTC(),
		Details: map[string]interface{}{
			"current_streak": bumped.CurrentStreak,
			"longest_streak": bumped.LongestStreak,
		},
	}
	if s.redis != nil {
		if err := s.redis.PublishDashboardEvent(ctx, event); err != nil {
			s.logger.Error("Failed to publish streak event", zap.Error(err))
		}
	}

	return bumped, nil
}

func (s *service) GetSummary(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	earned, err := s.repo.FindUserAwards(ctx, userID)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, ua := range earned {
		if award, ok := CatalogByID(ua.AwardID); ok {
			total += award.Points
		}
	}

	streak, err := s.GetStreak(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Catalog:     Catalog,
		Earned:      earned,
		TotalPoints: total,
		Streak:      streak,
	}, nil
}

func (s *service) GetEarned(ctx context.Context, userID uuid.UUID) ([]UserAward, error) {
	return s.repo.FindUserAwards(ctx, userID)
}

func (s *service) GetStreak(ctx context.Context, userID uuid.UUID) (UserStreak, error) {
	streak, err := s.repo.FindStreak(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrStreakNotFound) {
			return UserStreak{UserID: userID}, nil
		}
		return UserStreak{}, err
	}
	return *streak, nil
}

// ResetBrokenStreaks zeroes every running streak with no activity since
// yesterday. Called by the daily scheduler.
func (s *service) ResetBrokenStreaks(ctx context.Context) (int64, error) {
	streaks, err := s.repo.FindActiveStreaks(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	var reset int64
	for _, streak := range streaks {
		if !StreakBroken(streak, now) {
			continue
		}
		if err := s.repo.ZeroStreak(ctx, streak.UserID); err != nil {
			s.logger.Error("Failed to zero broken streak",
				zap.String("user_id", streak.UserID.String()),
				zap.Error(err),
			)
			continue
		}
		reset++
	}

	return reset, nil
}
