package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cobraflex/printercare/internal/api/handlers"
	"github.com/cobraflex/printercare/internal/api/middleware"
	"github.com/cobraflex/printercare/internal/api/routes"
	"github.com/cobraflex/printercare/internal/domain/awards"
	"github.com/cobraflex/printercare/internal/domain/events"
	"github.com/cobraflex/printercare/internal/domain/maintenance"
	"github.com/cobraflex/printercare/internal/domain/preset"
	"github.com/cobraflex/printercare/internal/domain/user"
	"github.com/cobraflex/printercare/internal/infrastructure/cache"
	"github.com/cobraflex/printercare/internal/infrastructure/persistence/postgres/connection"
	"github.com/cobraflex/printercare/internal/infrastructure/persistence/postgres/migrations"
	"github.com/cobraflex/printercare/internal/infrastructure/scheduler"
	"github.com/cobraflex/printercare/pkg/config"
	"github.com/cobraflex/printercare/pkg/logger"
	"github.com/cobraflex/printercare/pkg/security/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title           PrinterCare API
// @version         1.0
// @description     Maintenance checklist dashboard API for CobraFlex wide-format printers.

// @host      localhost:8000
// @BasePath

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// RequestLoggerMiddleware logs all incoming HTTP requests
func RequestLoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("Request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("") // Empty string will make it search in default locations
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Configuration loaded successfully")
	log.Info("Server mode: " + cfg.Server.Mode)

	// Set up Gin
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	gin.DefaultWriter = os.Stdout

	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware(log))
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: cfg.CORS.AllowedMethods,
		AllowHeaders: append(cfg.CORS.AllowedHeaders,
			"Accept-Encoding",
			"Content-Encoding",
			"Content-Type",
			"Authorization",
		),
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Encoding",
			"Content-Type",
			"Content-Disposition",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
		},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	// Add Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Connect to database
	db, err := connection.NewDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if err := migrations.AutoMigrate(db, log.Logger); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize Redis
	redisConfig := cache.NewConfigFromEnv(cfg)
	redisClient, err := cache.NewRedisClient(redisConfig)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Listen for dashboard change events published by the services
	go func() {
		err := redisClient.SubscribeToDashboardEvents(context.Background(), func(event *events.DashboardEvent) error {
			log.Info("Dashboard event",
				zap.String("type", event.EventType),
				zap.String("entity", event.EntityID),
			)
			return nil
		})
		if err != nil {
			log.Error("Dashboard event listener stopped", zap.Error(err))
		}
	}()

	// Initialize rate limiter with Redis client
	rateLimiter := auth.NewRedisRateLimiter(redisClient.GetClient(), 1*time.Minute, 300)

	// Create cache middleware instance
	cacheMiddleware := middleware.NewCacheMiddleware(redisClient, "printercare", 5*time.Minute)

	// Initialize repositories
	userRepo := user.NewRepository(db)
	presetRepo := preset.NewRepository(db)
	awardsRepo := awards.NewRepository(db)
	maintenanceRepo := maintenance.NewRepository(db)

	// Initialize services
	userService := user.NewService(userRepo, redisClient, log.Logger)
	presetService := preset.NewService(presetRepo, redisClient, log.Logger)
	awardsService := awards.NewService(awardsRepo, redisClient, log.Logger)
	maintenanceService := maintenance.NewService(maintenanceRepo, userService, presetService, awardsService, redisClient, log.Logger)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, cfg.Auth.JWTSecret)
	maintenanceHandler := handlers.NewMaintenanceHandler(maintenanceService)
	awardsHandler := handlers.NewAwardsHandler(awardsService)
	presetHandler := handlers.NewPresetHandler(presetService)

	// Start the nightly cycle reset job
	if cfg.Scheduler.Enabled {
		resetScheduler := scheduler.NewScheduler(maintenanceService, awardsService, log)
		resetScheduler.Start()
		log.Info("Maintenance cycle scheduler started")
	} else {
		log.Warn("Maintenance cycle scheduler is disabled")
	}

	// Swagger documentation endpoint
	if cfg.Swagger.Enabled {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		log.Info("Registered swagger route at /swagger/index.html")
	}

	// Health check routes (no /api prefix as these are system endpoints)
	routes.SetupHealthRoutes(router, db.DB, redisClient)
	log.Info("Registered health check routes at /health")

	// Set up user routes
	userRoutes := routes.NewUserRoutes(userHandler, cfg.Auth.JWTSecret, rateLimiter)
	userRoutes.RegisterRoutes(router)
	log.Info("Registered user routes at /api/users")

	// Checklist and log routes (protected)
	maintenanceRoutes := routes.NewMaintenanceRoutes(maintenanceHandler, cfg.Auth.JWTSecret)
	maintenanceRoutes.RegisterRoutes(router, cacheMiddleware)
	log.Info("Registered maintenance routes at /api/tasks and /api/logs")

	// Award routes (protected)
	awardsRoutes := routes.NewAwardsRoutes(awardsHandler, cfg.Auth.JWTSecret)
	awardsRoutes.RegisterRoutes(router, cacheMiddleware)
	log.Info("Registered award routes at /api/awards")

	// Preset routes (admin only)
	presetRoutes := routes.NewPresetRoutes(presetHandler, cfg.Auth.JWTSecret)
	presetRoutes.RegisterRoutes(router, cacheMiddleware)
	log.Info("Registered preset routes at /api/presets")

	// Start server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info(fmt.Sprintf("Server starting on port %d", cfg.Server.Port))

		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited properly")
}
