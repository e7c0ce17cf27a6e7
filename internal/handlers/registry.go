package handlers

import (
	"startuphub_backend/internal/config"
	"startuphub_backend/internal/services"
	"startuphub_backend/internal/validator"
)

// AppHandlers bundles every HTTP handler.
type AppHandlers struct {
	Auth         *AuthHandler
	Startup      *StartupHandler
	Position     *PositionHandler
	Application  *ApplicationHandler
	Notification *NotificationHandler
	Engagement   *EngagementHandler
	Messaging    *MessagingHandler
	User         *UserHandler
	Upload       *UploadHandler
}

// NewAppHandlers builds the handler set over the service container.
func NewAppHandlers(container *services.ServiceContainer, cfg *config.Config) *AppHandlers {
	base := NewBaseHandler(validator.New())

	return &AppHandlers{
		Auth:         NewAuthHandler(base, container.AuthService, cfg),
		Startup:      NewStartupHandler(base, container.StartupService),
		Position:     NewPositionHandler(base, container.PositionService),
		Application:  NewApplicationHandler(base, container.ApplicationService),
		Notification: NewNotificationHandler(base, container.NotificationService),
		Engagement:   NewEngagementHandler(base, container.EngagementService),
		Messaging:    NewMessagingHandler(base, container.MessagingService),
		User:         NewUserHandler(base, container.SearchService),
		Upload:       NewUploadHandler(base, container.UploadService),
	}
}
