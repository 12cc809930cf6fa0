package main

import (
	"note-service/internal/entitlement"
	"note-service/internal/handler"
	"note-service/internal/middleware"
	"note-service/internal/store"
	"note-service/pkg/config"
	"note-service/pkg/database"
	"note-service/pkg/jwtutil"
	"note-service/pkg/logger"
	"note-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables.
	// A missing or trivial JWT signing key fails here, before anything
	// listens.
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting note service...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Token codec with the injected signing key
	tokens, err := jwtutil.New(&cfg.JWT)
	if err != nil {
		log.Fatal("Failed to initialize token codec", zap.Error(err))
	}
	log.Info("Token codec initialized")

	// Stores and domain services
	db := database.GetDB()
	users := store.NewUserStore(db)
	tenants := store.NewTenantStore(db)
	notes := store.NewNoteStore(db)
	checker := entitlement.NewChecker(tenants, notes)

	authHandler := handler.NewAuthHandler(users, tokens)
	noteHandler := handler.NewNoteHandler(notes, checker)
	tenantHandler := handler.NewTenantHandler(tenants)
	authenticator := middleware.NewAuthenticator(tokens)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Authentication routes
	auth := e.Group("/auth")
	auth.POST("/login", authHandler.Login)

	// API routes - all require authentication
	api := e.Group("/api")
	api.Use(authenticator.Middleware)

	// Note management
	api.GET("/notes", noteHandler.ListNotes)
	api.POST("/notes", noteHandler.CreateNote)
	api.GET("/notes/:id", noteHandler.GetNote)
	api.PUT("/notes/:id", noteHandler.UpdateNote)
	api.DELETE("/notes/:id", noteHandler.DeleteNote)

	// Tenant plan upgrade
	api.POST("/tenants/:slug/upgrade", tenantHandler.UpgradeTenant)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
