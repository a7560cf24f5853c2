package awards

import (
	"context"
	"errors"
	"time"

	"github.com/cobraflex/printercare/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAlreadyEarned  = errors.New("award already earned")
	ErrStreakNotFound = errors.New("streak not found")
)

// Repository defines the interface for award persistence operations
type Repository interface {
	CreateUserAward(ctx context.Context, award *UserAward) error
	FindUserAwards(ctx context.Context, userID uuid.UUID) ([]UserAward, error)
	FindEarnedAwardIDs(ctx context.Context, userID uuid.UUID) (map[string]bool, error)

	FindStreak(ctx context.Context, userID uuid.UUID) (*UserStreak, error)
	SaveStreak(ctx context.Context, streak *UserStreak) error
	FindActiveStreaks(ctx context.Context) ([]UserStreak, error)
	ZeroStreak(ctx context.Context, userID uuid.UUID) error
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) CreateUserAward(ctx context.Context, award *UserAward) error {
	err := r.db.WithContext(ctx).Create(award).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Unique index on (user_id, award_id); a concurrent toggle got there first
		return ErrAlreadyEarned
	}
	return err
}

func (r *repository) FindUserAwards(ctx context.Context, userID uuid.UUID) ([]UserAward, error) {
	var earned []UserAward
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("earned_at ASC").
		Find(&earned).Error
	return earned, err
}

func (r *repository) FindEarnedAwardIDs(ctx context.Context, userID uuid.UUID) (map[string]bool, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&UserAward{}).
		Where("user_id = ?", userID).
		Pluck("award_id", &ids).Error
	if err != nil {
		return nil, err
	}

	earned := make(map[string]bool, len(ids))
	for _, id := range ids {
		earned[id] = true
	}
	return earned, nil
}

func (r *repository) FindStreak(ctx context.Context, userID uuid.UUID) (*UserStreak, error) {
	var streak UserStreak
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&streak)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrStreakNotFound
		}
		return nil, result.Error
	}
	return &streak, nil
}

func (r *repository) SaveStreak(ctx context.Context, streak *UserStreak) error {
	streak.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(streak).Error
}

func (r *repository) FindActiveStreaks(ctx context.Context) ([]UserStreak, error) {
	var streaks []UserStreak
	err := r.db.WithContext(ctx).
		Where("current_streak > 0").
		Find(&streaks).Error
	return streaks, err
}

func (r *repository) ZeroStreak(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&UserStreak{}).
		Where("user_id = ?", userID).
		Update("current_streak", 0).Error
}
