package user

import (
	"context"
	"errors"
	"time"

	"github.com/cobraflex/printercare/internal/domain/events"
	"github.com/cobraflex/printercare/internal/infrastructure/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
)

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Login(ctx context.Context, input LoginInput) (*User, *UserSession, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]User, error)
	ListUsers(ctx context.Context, filter Filter) ([]User, int64, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*User, error)
	GetUserSessions(ctx context.Context, userID uuid.UUID) ([]UserSession, error)
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

func (s *service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if len(input.Password) < 6 {
		return nil, ErrWeakPassword
	}

	existing, err := s.repo.FindByIdentity(ctx, input.CompanyName, input.SerialNumber, input.OperatorName)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	timezone := input.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	u := &User{
		CompanyName:  input.CompanyName,
		SerialNumber: input.SerialNumber,
		OperatorName: input.OperatorName,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         RoleCustomer,
		Location:     input.Location,
		Department:   input.Department,
		Timezone:     timezone,
		PurchaseDate: input.PurchaseDate,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", u.ID.String()),
		zap.String("company", u.CompanyName),
		zap.String("serial_number", u.SerialNumber),
	)

	return u, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (*User, *UserSession, error) {
	u, err := s.repo.FindByIdentity(ctx, input.CompanyName, input.SerialNumber, input.OperatorName)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	now := time.Now()

	// A fresh login supersedes any session left open by a missed logout.
	if err := s.repo.CloseOpenSessions(ctx, u.ID, now); err != nil {
		s.logger.Warn("Failed to close stale sessions", zap.Error(err))
	}

	timezone := input.Timezone
	if timezone == "" {
		timezone = u.Timezone
	}

	session := &UserSession{
		UserID:    u.ID,
		LoginTime: now,
		Timezone:  timezone,
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, nil, err
	}

	u.LastLogin = &now
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, nil, err
	}

	event := &events.DashboardEvent{
		EventType: events.EventTypeSessionUpdate,
		UserID:    u.ID,
		EntityID:  session.ID.String(),
		Timestamp: now.UTC(),
		Details: map[string]interface{}{
			"action":   "login",
			"timezone": timezone,
		},
	}
	if s.redis != nil {
		if err := s.redis.PublishDashboardEvent(ctx, event); err != nil {
			s.logger.Error("Failed to publish session event", zap.Error(err))
		}
	}

	return u, session, nil
}

func (s *service) Logout(ctx context.Context, userID uuid.UUID) error {
	now := time.Now()
	if err := s.repo.CloseOpenSessions(ctx, userID, now); err != nil {
		return err
	}

	event := &events.DashboardEvent{
		EventType: events.EventTypeSessionUpdate,
		UserID:    userID,
		Timestamp: now.UTC(),
		Details: map[string]interface{}{
			"action": "logout",
		},
	}
	if s.redis != nil {
		if err := s.redis.PublishDashboardEvent(ctx, event); err != nil {
			s.logger.Error("Failed to publish session event", zap.Error(err))
		}
	}

	return nil
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) GetUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]User, error) {
	return s.repo.FindByIDs(ctx, ids)
}

func (s *service) ListUsers(ctx context.Context, filter Filter) ([]User, int64, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *service) UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		u.Email = *input.Email
	}
	if input.Location != nil {
		u.Location = *input.Location
	}
	if input.Department != nil {
		u.Department = *input.Department
	}
	if input.Timezone != nil {
		u.Timezone = *input.Timezone
	}
	if input.PurchaseDate != nil {
		u.PurchaseDate = *input.PurchaseDate
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) GetUserSessions(ctx context.Context, userID uuid.UUID) ([]UserSession, error) {
	return s.repo.FindSessionsByUser(ctx, userID)
}
