package routes

import (
	"github.com/cobraflex/printercare/internal/api/dto"
	"github.com/cobraflex/printercare/internal/api/handlers"
	"github.com/cobraflex/printercare/internal/api/middleware"
	"github.com/cobraflex/printercare/internal/domain/user"
	"github.com/gin-gonic/gin"
)

// PresetRoutes handles the setup of preset management routes
type PresetRoutes struct {
	handler   *handlers.PresetHandler
	jwtSecret string
}

// NewPresetRoutes creates a new PresetRoutes instance
func NewPresetRoutes(handler *handlers.PresetHandler, jwtSecret string) *PresetRoutes {
	return &PresetRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all preset routes. The whole group is admin only.
func (r *PresetRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	validation := middleware.NewValidationMiddleware()
	metrics := middleware.NewMetricsMiddleware()

	presets := router.Group("/api/presets")
	presets.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	presets.Use(middleware.RequireRole(user.RoleAdmin))
	presets.Use(metrics.CollectMetrics())

	presets.GET("", cache.CacheResponse(), r.handler.ListPresets)
	presets.POST("", validation.ValidateRequest(&dto.CreatePresetRequest{}), cache.CacheInvalidate("presets:*"), r.handler.CreatePreset)
	presets.PUT("/:id", cache.CacheInvalidate("presets:*", "tasks:*"), r.handler.UpdatePreset)
	presets.DELETE("/:id", cache.CacheInvalidate("presets:*", "tasks:*"), r.handler.DeletePreset)

	// Assignments change which tasks a printer is seeded with
	presets.GET("/assignments", r.handler.ListAssignments)
	presets.POST("/assignments", validation.ValidateRequest(&dto.AssignPresetRequest{}), cache.CacheInvalidate("presets:*", "tasks:*"), r.handler.Assign)
	presets.DELETE("/assignments/:id", cache.CacheInvalidate("presets:*", "tasks:*"), r.handler.Unassign)
}
