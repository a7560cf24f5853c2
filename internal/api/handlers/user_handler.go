package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/cobraflex/printercare/internal/api/dto"
	"github.com/cobraflex/printercare/internal/api/middleware"
	"github.com/cobraflex/printercare/internal/domain/user"
	"github.com/cobraflex/printercare/pkg/security/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService user.Service
	jwtSecret   string
}

func NewUserHandler(userService user.Service, jwtSecret string) *UserHandler {
	return &UserHandler{userService: userService, jwtSecret: jwtSecret}
}

// Register handles account creation
// @Summary Register a new account
// @Description Create an account identified by company name, serial number and operator name
// @Tags users
// @Accept json
// @Produce json
// @Param account body dto.RegisterRequest true "Registration request"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	validatedModel, exists := c.Get("validated_model")
	if exists {
		if validatedPtr, ok := validatedModel.(*dto.RegisterRequest); ok {
			req = *validatedPtr
		} else {
			log.Errorf("Invalid model type: %T, expected *dto.RegisterRequest", validatedModel)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model type from validation"})
			return
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "purchase_date must be an ISO date (YYYY-MM-DD)"})
		return
	}

	created, err := h.userService.Register(c.Request.Context(), user.RegisterInput{
		CompanyName:  req.CompanyName,
		SerialNumber: req.SerialNumber,
		OperatorName: req.OperatorName,
		Email:        req.Email,
		Password:     req.Password,
		Location:     req.Location,
		Department:   req.Department,
		Timezone:     req.Timezone,
		PurchaseDate: purchaseDate,
	})
	if err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, user.ErrUserExists):
			statusCode = http.StatusConflict
		case errors.Is(err, user.ErrWeakPassword):
			statusCode = http.StatusBadRequest
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": UserToResponse(created)})
}

// Login handles authentication and session creation
// @Summary Login
// @Description Authenticate with company name, serial number, operator name and password
// @Tags users
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, _, err := h.userService.Login(c.Request.Context(), user.LoginInput{
		CompanyName:  req.CompanyName,
		SerialNumber: req.SerialNumber,
		OperatorName: req.OperatorName,
		Password:     req.Password,
		Timezone:     req.Timezone,
		IPAddress:    c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
	})
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		log.Errorf("Login failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	token, err := auth.GenerateToken(
		account.ID,
		account.Email,
		account.Role,
		account.SerialNumber,
		h.jwtSecret,
		24,
	)
	if err != nil {
		log.Errorf("Failed to generate token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	auth.GetSessionStore().CreateSession(
		account.ID,
		c.Request.UserAgent(),
		c.ClientIP(),
		req.Timezone,
		token,
		24*time.Hour,
	)

	c.JSON(http.StatusOK, gin.H{"data": dto.LoginResponse{
		Token: token,
		User:  UserToResponse(account),
	}})
}

// Logout invalidates the current token and closes open session records
// @Summary Logout
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/users/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if token, ok := c.Get("token"); ok {
		tokenString := token.(string)
		// Blacklist until the token's own expiry so cleanup cannot evict it early
		expiry := time.Now().Add(24 * time.Hour)
		if claims, err := auth.ValidateToken(tokenString, h.jwtSecret); err == nil {
			expiry = claims.ExpiresAt.Time
		}
		auth.GetTokenBlacklist().AddToBlacklist(tokenString, expiry)
		auth.GetSessionStore().InvalidateSession(tokenString)
	}

	if err := h.userService.Logout(c.Request.Context(), userID); err != nil {
		log.Errorf("Failed to close session records: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the authenticated user's account
// @Summary Get current account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} map[string]string
// @Router /api/users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	account, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, user.ErrUserNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": UserToResponse(account)})
}

// UpdateMe updates the authenticated user's profile
// @Summary Update current account
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body dto.UpdateProfileRequest true "Profile update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/users/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := user.UpdateProfileInput{
		Email:      req.Email,
		Location:   req.Location,
		Department: req.Department,
		Timezone:   req.Timezone,
	}
	if req.PurchaseDate != nil {
		purchaseDate, err := time.Parse("2006-01-02", *req.PurchaseDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "purchase_date must be an ISO date (YYYY-MM-DD)"})
			return
		}
		input.PurchaseDate = &purchaseDate
	}

	updated, err := h.userService.UpdateProfile(c.Request.Context(), userID, input)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, user.ErrUserNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": UserToResponse(updated)})
}

// ListUsers returns all accounts (admin only)
// @Summary List accounts
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param company query string false "Filter by company name"
// @Param role query string false "Filter by role"
// @Success 200 {object} dto.UserListResponse
// @Failure 403 {object} map[string]string
// @Router /api/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	filter := user.Filter{}
	if company := c.Query("company"); company != "" {
		filter.CompanyName = &company
	}
	if role := c.Query("role"); role != "" {
		filter.Role = &role
	}

	users, total, err := h.userService.ListUsers(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, UserToResponse(&users[i]))
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.UserListResponse{Users: out, Total: total}})
}

// ListUserSessions returns the login history of an account (admin only)
// @Summary List account sessions
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID" format(uuid)
// @Success 200 {object} dto.SessionListResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/users/{id}/sessions [get]
func (h *UserHandler) ListUserSessions(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	sessions, err := h.userService.GetUserSessions(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, SessionToResponse(s))
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.SessionListResponse{Sessions: out, Total: len(out)}})
}
