package user

import (
	"context"
	"errors"
	"time"

	"github.com/cobraflex/printercare/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrSessionNotFound = errors.New("session not found")
)

// Filter defines the filtering options for user listings
type Filter struct {
	CompanyName *string
	Role        *string
	Page        int
	PageSize    int
}

// Repository defines the interface for user persistence operations
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByIdentity(ctx context.Context, companyName, serialNumber, operatorName string) (*User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]User, error)
	FindAll(ctx context.Context, filter Filter) ([]User, int64, error)
	Update(ctx context.Context, u *User) error

	CreateSession(ctx context.Context, session *UserSession) error
	CloseSession(ctx context.Context, sessionID uuid.UUID, at time.Time) error
	CloseOpenSessions(ctx context.Context, userID uuid.UUID, at time.Time) error
	FindSessionsByUser(ctx context.Context, userID uuid.UUID) ([]UserSession, error)
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	result := r.db.WithContext(ctx).First(&u, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &u, nil
}

func (r *repository) FindByIdentity(ctx context.Context, companyName, serialNumber, operatorName string) (*User, error) {
	var u User
	result := r.db.WithContext(ctx).
		Where("company_name = ? AND serial_number = ? AND operator_name = ?",
			companyName, serialNumber, operatorName).
		First(&u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &u, nil
}

func (r *repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]User, error) {
	var users []User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *repository) FindAll(ctx context.Context, filter Filter) ([]User, int64, error) {
	var users []User
	var total int64
	query := r.db.WithContext(ctx).Model(&User{})

	if filter.CompanyName != nil {
		query = query.Where("company_name ILIKE ?", "%"+*filter.CompanyName+"%")
	}
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}

	err := query.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	if filter.PageSize == 0 {
		filter.PageSize = 100
	}

	err = query.Order("created_at ASC").
		Offset(filter.Page * filter.PageSize).
		Limit(filter.PageSize).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *repository) Update(ctx context.Context, u *User) error {
	result := r.db.WithContext(ctx).Save(u)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) CreateSession(ctx context.Context, session *UserSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *repository) CloseSession(ctx context.Context, sessionID uuid.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&UserSession{}).
		Where("id = ? AND logout_time IS NULL", sessionID).
		Update("logout_time", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// CloseOpenSessions stamps a logout time on every session of the user that
// is still open. Used on logout and on a fresh login from the same account.
func (r *repository) CloseOpenSessions(ctx context.Context, userID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&UserSession{}).
		Where("user_id = ? AND logout_time IS NULL", userID).
		Update("logout_time", at).Error
}

func (r *repository) FindSessionsByUser(ctx context.Context, userID uuid.UUID) ([]UserSession, error) {
	var sessions []UserSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("login_time DESC").
		Find(&sessions).Error
	return sessions, err
}
