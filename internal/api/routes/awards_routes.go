package routes

import (
	"github.com/cobraflex/printercare/internal/api/handlers"
	"github.com/cobraflex/printercare/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// AwardsRoutes handles the setup of gamification routes
type AwardsRoutes struct {
	handler   *handlers.AwardsHandler
	jwtSecret string
}

// NewAwardsRoutes creates a new AwardsRoutes instance
func NewAwardsRoutes(handler *handlers.AwardsHandler, jwtSecret string) *AwardsRoutes {
	return &AwardsRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all award routes
func (r *AwardsRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	metrics := middleware.NewMetricsMiddleware()

	awards := router.Group("/api/awards")
	awards.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	awards.Use(metrics.CollectMetrics())

	awards.GET("", cache.CacheResponse(), r.handler.GetSummary)
	awards.GET("/earned", cache.CacheResponse(), r.handler.GetEarned)
}
