package routes

import (
	"github.com/cobraflex/printercare/internal/api/dto"
	"github.com/cobraflex/printercare/internal/api/handlers"
	"github.com/cobraflex/printercare/internal/api/middleware"
	"github.com/cobraflex/printercare/internal/domain/user"
	"github.com/cobraflex/printercare/pkg/security/auth"
	"github.com/gin-gonic/gin"
)

type UserRoutes struct {
	userHandler *handlers.UserHandler
	jwtSecret   string
	rateLimiter *auth.RedisRateLimiter
}

func NewUserRoutes(userHandler *handlers.UserHandler, jwtSecret string, rateLimiter *auth.RedisRateLimiter) *UserRoutes {
	return &UserRoutes{
		userHandler: userHandler,
		jwtSecret:   jwtSecret,
		rateLimiter: rateLimiter,
	}
}

// RegisterRoutes sets up all account routes
func (ur *UserRoutes) RegisterRoutes(router *gin.Engine) {
	validation := middleware.NewValidationMiddleware()

	userGroup := router.Group("/api/users")
	{
		// Public routes with stricter rate limiting
		public := userGroup.Group("")
		public.Use(middleware.RateLimitMiddleware(ur.rateLimiter))
		{
			public.POST("/register", validation.ValidateRequest(&dto.RegisterRequest{}), ur.userHandler.Register)
			public.POST("/login", ur.userHandler.Login)
		}

		// Protected routes
		protected := userGroup.Group("")
		protected.Use(
			middleware.NewAuthMiddleware(ur.jwtSecret),
			middleware.RateLimitMiddleware(ur.rateLimiter),
		)
		{
			protected.POST("/logout", ur.userHandler.Logout)
			protected.GET("/me", ur.userHandler.Me)
			protected.PUT("/me", ur.userHandler.UpdateMe)

			// Fleet views are restricted to administrators
			admin := protected.Group("")
			admin.Use(middleware.RequireRole(user.RoleAdmin))
			{
				admin.GET("", ur.userHandler.ListUsers)
				admin.GET("/:id/sessions", ur.userHandler.ListUserSessions)
			}
		}
	}
}
