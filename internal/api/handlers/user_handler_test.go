package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cobraflex/printercare/internal/domain/user"
	"github.com/cobraflex/printercare/pkg/security/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserService struct {
	loggedOut []uuid.UUID
}

func (m *mockUserService) Register(ctx context.Context, input user.RegisterInput) (*user.User, error) {
	return nil, nil
}

func (m *mockUserService) Login(ctx context.Context, input user.LoginInput) (*user.User, *user.UserSession, error) {
	return nil, nil, nil
}

func (m *mockUserService) Logout(ctx context.Context, userID uuid.UUID) error {
	m.loggedOut = append(m.loggedOut, userID)
	return nil
}

func (m *mockUserService) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (m *mockUserService) GetUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]user.User, error) {
	return nil, nil
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

func TestLogoutBlacklistsTokenUntilExpiry(t *testing.T) {
	gin.SetMode(gin.TestMode)

	secret := "test-secret"
	userID := uuid.New()
	token, err := auth.GenerateToken(userID, "jordan@cobraflex.com", user.RoleCustomer, "CF-1001", secret, 24)
	require.NoError(t, err)

	svc := &mockUserService{}
	h := NewUserHandler(svc, secret)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/users/logout", nil)
	c.Set("user_id", userID)
	c.Set("token", token)

	h.Logout(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []uuid.UUID{userID}, svc.loggedOut)
	assert.True(t, auth.GetTokenBlacklist().IsBlacklisted(token))

	// A later insert triggers the blacklist cleanup; the token must survive it
	// because its entry carries the JWT expiry rather than a past timestamp.
	auth.GetTokenBlacklist().AddToBlacklist("unrelated-token", time.Now().Add(time.Hour))
	assert.True(t, auth.GetTokenBlacklist().IsBlacklisted(token))
}
