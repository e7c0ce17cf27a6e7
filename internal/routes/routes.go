package routes

import (
	"net/http"

	"startuphub_backend/internal/config"
	"startuphub_backend/internal/handlers"
	"startuphub_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes mounts the whole HTTP surface: the auth endpoints at the
// root, the domain API under /api, and the service endpoints.
func RegisterRoutes(r *gin.Engine, h *handlers.AppHandlers, resolver *middleware.IdentityResolver, cfg *config.Config) {
	r.GET("/", home)
	r.GET("/health", health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	root := r.Group("/")
	root.Use(resolver.Middleware())
	{
		signupLimiter := middleware.NewRateLimiter(cfg.RateLimit.SignupPerMinute)
		loginLimiter := middleware.NewRateLimiter(cfg.RateLimit.LoginPerMinute)
		sendCodeLimiter := middleware.NewRateLimiter(cfg.RateLimit.SendCodePerMinute)

		h.Auth.RegisterRoutes(root,
			signupLimiter.Middleware(),
			loginLimiter.Middleware(),
			sendCodeLimiter.Middleware(),
		)

		api := root.Group("/api")
		{
			h.Startup.RegisterRoutes(api)
			h.Position.RegisterRoutes(api)
			h.Application.RegisterRoutes(api)
			h.Notification.RegisterRoutes(api)
			h.Engagement.RegisterRoutes(api)
			h.Messaging.RegisterRoutes(api)
			h.User.RegisterRoutes(api)
			h.Upload.RegisterRoutes(api)
		}
	}

	// Locally stored uploads are served straight from disk.
	if cfg.Storage.Type == "" || cfg.Storage.Type == "local" {
		basePath := cfg.Storage.BasePath
		if basePath == "" {
			basePath = "./uploads"
		}
		r.Static("/files", basePath)
	}
}

// home lists the public endpoint groups, the old landing response.
func home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name": "startuphub api",
		"endpoints": gin.H{
			"auth":           "/signup, /auth/*",
			"marketplace":    "/api/marketplace",
			"collaborations": "/api/collaborations",
			"positions":      "/api/positions",
			"search":         "/api/search",
			"stats":          "/api/stats",
		},
	})
}

// health reports readiness: the process is up and the database answers.
func health(c *gin.Context) {
	if db := middleware.DBFromContext(c); db != nil {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}
