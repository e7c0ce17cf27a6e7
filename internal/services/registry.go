package services

import (
	"startuphub_backend/internal/auth"
	"startuphub_backend/internal/authz"
	"startuphub_backend/internal/config"
	"startuphub_backend/internal/email"
	"startuphub_backend/internal/repositories"
	"startuphub_backend/internal/storage"

	"gorm.io/gorm"
)

// ServiceContainer bundles every service the handlers need.
type ServiceContainer struct {
	AuthService         AuthService
	StartupService      StartupService
	PositionService     PositionService
	ApplicationService  ApplicationService
	NotificationService NotificationService
	EngagementService   EngagementService
	MessagingService    MessagingService
	UploadService       UploadService
	SearchService       SearchService
}

// NewServiceContainer wires repositories, the token manager, the authz gate
// and the providers into the service graph.
func NewServiceContainer(
	db *gorm.DB,
	cfg *config.Config,
	tokens *auth.TokenManager,
	emailProvider email.Provider,
	store storage.Storage,
) *ServiceContainer {
	userRepo := repositories.NewUserRepository(db)
	codeRepo := repositories.NewVerificationCodeRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	legacyRepo := repositories.NewLegacySessionRepository(db)
	startupRepo := repositories.NewStartupRepository(db)
	positionRepo := repositories.NewPositionRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	favoriteRepo := repositories.NewFavoriteRepository(db)
	interestRepo := repositories.NewInterestRepository(db)
	conversationRepo := repositories.NewConversationRepository(db)
	uploadRepo := repositories.NewUploadRepository(db)

	gate := authz.NewGate()

	notificationService := NewNotificationService(notificationRepo)
	messagingService := NewMessagingService(conversationRepo, userRepo, gate)

	return &ServiceContainer{
		AuthService: NewAuthService(userRepo, codeRepo, sessionRepo, legacyRepo,
			tokens, emailProvider, cfg),
		StartupService:  NewStartupService(startupRepo, gate),
		PositionService: NewPositionService(positionRepo, startupRepo, gate),
		ApplicationService: NewApplicationService(applicationRepo, positionRepo,
			startupRepo, notificationService, gate),
		NotificationService: notificationService,
		EngagementService: NewEngagementService(favoriteRepo, interestRepo,
			startupRepo, messagingService, notificationService, gate),
		MessagingService: messagingService,
		UploadService:    NewUploadService(uploadRepo, store, cfg.Upload.MaxSize),
		SearchService:    NewSearchService(startupRepo, positionRepo, userRepo),
	}
}
