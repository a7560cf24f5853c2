package routes

import (
	"net/http"
	"time"

	"github.com/cobraflex/printercare/internal/infrastructure/cache"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthResponse represents the health check response structure
type HealthResponse struct {
	Status    string    `json:"status" example:"healthy"`
	Timestamp time.Time `json:"timestamp" example:"2026-04-17T02:00:00Z"`
}

// SetupHealthRoutes registers health check endpoints
func SetupHealthRoutes(router *gin.Engine, db *gorm.DB, redis *cache.RedisClient) {
	// @Summary Health check endpoint
	// @Description Get the current health status of the API
	// @Tags health
	// @Produce json
	// @Success 200 {object} HealthResponse
	// @Router /health [get]
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC(),
		})
	})

	// @Summary Readiness check endpoint
	// @Description Readiness requires a reachable database
	// @Tags health
	// @Produce json
	// @Success 200 {object} HealthResponse
	// @Failure 503 {object} HealthResponse
	// @Router /health/ready [get]
	router.GET("/health/ready", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, HealthResponse{
				Status:    "database unreachable",
				Timestamp: time.Now().UTC(),
			})
			return
		}

		c.JSON(http.StatusOK, HealthResponse{
			Status:    "ready",
			Timestamp: time.Now().UTC(),
		})
	})

	// @Summary Cache health endpoint
	// @Description Reports whether the Redis cache is reachable
	// @Tags health
	// @Produce json
	// @Success 200 {object} HealthResponse
	// @Failure 503 {object} HealthResponse
	// @Router /health/cache [get]
	router.GET("/health/cache", func(c *gin.Context) {
		if err := redis.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"component": "cache",
				"error":     err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"component": "cache",
			"metrics":   redis.GetMetrics(),
		})
	})
}
