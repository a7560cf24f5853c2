package routes

import (
	"github.com/cobraflex/printercare/internal/api/dto"
	"github.com/cobraflex/printercare/internal/api/handlers"
	"github.com/cobraflex/printercare/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// MaintenanceRoutes handles the setup of checklist and log routes
type MaintenanceRoutes struct {
	handler   *handlers.MaintenanceHandler
	jwtSecret string
}

// NewMaintenanceRoutes creates a new MaintenanceRoutes instance
func NewMaintenanceRoutes(handler *handlers.MaintenanceHandler, jwtSecret string) *MaintenanceRoutes {
	return &MaintenanceRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all checklist and log routes
func (r *MaintenanceRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	validation := middleware.NewValidationMiddleware()
	metrics := middleware.NewMetricsMiddleware()
	circuitBreaker := middleware.NewCircuitBreaker(middleware.DefaultCircuitBreakerConfig())

	tasks := router.Group("/api/tasks")
	tasks.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	tasks.Use(metrics.CollectMetrics())

	// Read operations with caching
	tasks.GET("", cache.CacheResponse(), r.handler.ListTasks)

	// Write operations with cache invalidation and validation
	tasks.POST("", validation.ValidateRequest(&dto.AddTaskRequest{}), cache.CacheInvalidate("tasks:*"), r.handler.AddTask)

	// Toggling touches logs and awards too, so clear all three namespaces.
	// The circuit breaker guards the award evaluation path.
	tasks.POST("/:id/toggle",
		circuitBreaker.CircuitBreakerMiddleware(),
		cache.CacheInvalidate("tasks:*", "logs:*", "awards:*"),
		r.handler.ToggleTask)

	logs := router.Group("/api/logs")
	logs.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	logs.Use(metrics.CollectMetrics())

	logs.GET("", cache.CacheResponse(), r.handler.ListLogs)
	logs.GET("/export", r.handler.ExportLogs)
}
