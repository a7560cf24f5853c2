package handlers

import (
	"net/http"

	"github.com/cobraflex/printercare/internal/api/dto"
	"github.com/cobraflex/printercare/internal/api/middleware"
	"github.com/cobraflex/printercare/internal/domain/awards"
	"github.com/gin-gonic/gin"
)

// AwardsHandler handles HTTP requests for the gamification layer
type AwardsHandler struct {
	service awards.Service
}

// NewAwardsHandler creates a new AwardsHandler instance
func NewAwardsHandler(service awards.Service) *AwardsHandler {
	return &AwardsHandler{service: service}
}

// GetSummary godoc
// @Summary Get award summary
// @Description Get the award catalog, earned awards, total points and current streak
// @Tags awards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AwardSummaryResponse
// @Failure 401 {object} map[string]string
// @Router /api/awards [get]
func (h *AwardsHandler) GetSummary(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	summary, err := h.service.GetSummary(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	earned := make([]dto.UserAwardResponse, 0, len(summary.Earned))
	for _, ua := range summary.Earned {
		earned = append(earned, UserAwardToResponse(ua))
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.AwardSummaryResponse{
		Catalog:     AwardsToResponse(summary.Catalog),
		Earned:      earned,
		TotalPoints: summary.TotalPoints,
		Streak: dto.StreakResponse{
			CurrentStreak: summary.Streak.CurrentStreak,
			LongestStreak: summary.Streak.LongestStreak,
			LastActiveDay: summary.Streak.LastActiveDay,
		},
	}})
}

// GetEarned godoc
// @Summary List earned awards
// @Description Get the authenticated user's earned award records
// @Tags awards
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UserAwardResponse
// @Failure 401 {object} map[string]string
// @Router /api/awards/earned [get]
func (h *AwardsHandler) GetEarned(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	records, err := h.service.GetEarned(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	earned := make([]dto.UserAwardResponse, 0, len(records))
	for _, ua := range records {
		earned = append(earned, UserAwardToResponse(ua))
	}

	c.JSON(http.StatusOK, gin.H{"data": earned})
}
