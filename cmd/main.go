package main

import (
	"strconv"
	"time"

	"leave-service/internal/handler"
	"leave-service/internal/middleware"
	"leave-service/internal/repository"
	"leave-service/internal/service"
	"leave-service/pkg/config"
	"leave-service/pkg/database"
	"leave-service/pkg/jwtutil"
	"leave-service/pkg/logger"
	"leave-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting leave service...", zap.String("environment", cfg.Server.Env))

	// Initialize JWT utilities
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utilities initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	// Initialize database and run migrations
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established and migrations completed",
		zap.String("db_host", cfg.DB.Host),
		zap.String("db_name", cfg.DB.DBName))

	// Wire repositories, services and handlers
	userRepo := repository.NewUserRepository(database.GetDB())
	leaveRepo := repository.NewLeaveRepository(database.GetDB())

	userService := service.NewUserService(userRepo, log)
	leaveService := service.NewLeaveService(leaveRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(userService)
	userHandler := handler.NewUserHandler(userService)
	leaveHandler := handler.NewLeaveHandler(leaveService)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)

	// Request logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Process request
			err := next(c)

			// Calculate duration
			duration := time.Since(start).Seconds()
			status := c.Response().Status

			// Log request details
			log := logger.FromContext(c)
			log.Info("HTTP Request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", status),
				zap.Float64("duration_s", duration),
				zap.String("ip", c.RealIP()),
			)

			// Update Prometheus HTTP metrics
			prometheus.HttpRequestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				strconv.Itoa(status),
			).Inc()

			prometheus.HttpRequestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
				strconv.Itoa(status),
			).Observe(duration)

			return err
		}
	})

	// Routes
	// Public routes that don't require authentication
	e.GET("/", handler.HealthCheck)
	e.GET("/health", handler.HealthCheck)

	// Prometheus metrics endpoint
	e.GET("/metrics", echo.WrapHandler(prometheus.GetPrometheusHandler()))

	// Authentication endpoints
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// API routes that require authentication
	api := e.Group("/api")
	api.Use(middleware.AuthMiddleware)

	// Leave request endpoints
	api.POST("/leaves", leaveHandler.Create)
	api.GET("/leaves", leaveHandler.List)
	api.PUT("/leaves/:id/status", leaveHandler.UpdateStatus, middleware.RequireAdmin)

	// Dashboard statistics
	api.GET("/stats", leaveHandler.GetStats)

	// Employee directory (administrators only)
	api.GET("/users", userHandler.ListEmployees, middleware.RequireAdmin)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
