package app

import (
	"fmt"
	"time"

	"startuphub_backend/database"
	"startuphub_backend/internal/auth"
	"startuphub_backend/internal/config"
	"startuphub_backend/internal/email"
	"startuphub_backend/internal/handlers"
	"startuphub_backend/internal/logger"
	"startuphub_backend/internal/middleware"
	"startuphub_backend/internal/routes"
	"startuphub_backend/internal/services"
	"startuphub_backend/internal/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Run loads configuration, connects to the database and serves until the
// process is stopped.
func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(db); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	router := SetupRouter(cfg, db, nil)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the full gin engine. emailProvider may be nil, in
// which case the SMTP provider from configuration is used; tests pass their
// own provider.
func SetupRouter(cfg *config.Config, db *gorm.DB, emailProvider email.Provider) *gin.Engine {
	if emailProvider == nil {
		emailProvider = buildEmailProvider(cfg)
	}

	store, err := storage.New(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	tokens := auth.NewTokenManager(cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWT.RefreshTTLDays)*24*time.Hour,
	)

	container := services.NewServiceContainer(db, cfg, tokens, emailProvider, store)
	appHandlers := handlers.NewAppHandlers(container, cfg)
	resolver := middleware.NewIdentityResolver(container.AuthService, cfg)

	router := newEngine(cfg, db)
	routes.RegisterRoutes(router, appHandlers, resolver, cfg)
	return router
}

func newEngine(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

func buildEmailProvider(cfg *config.Config) email.Provider {
	renderer := email.NewTemplateManager()
	provider := email.NewSMTPProvider(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		UseTLS:    cfg.Email.UseTLS,
	}, renderer)

	if err := provider.Validate(); err != nil {
		logger.Warn("Email provider misconfigured, verification emails will fail", "error", err)
	}
	return provider
}
