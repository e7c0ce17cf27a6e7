package services

import (
	"errors"
	"fmt"

	"startuphub_backend/internal/authz"
	"startuphub_backend/internal/logger"
	"startuphub_backend/internal/models"
	"startuphub_backend/internal/repositories"
	"startuphub_backend/internal/services/dto"
	"startuphub_backend/pkg/apperrors"
)

// EngagementService covers favorites and expressed interest. Expressing
// interest opens a conversation with the startup owner so the two sides can
// talk immediately.
type EngagementService interface {
	AddFavorite(user *models.User, startupID string) error
	RemoveFavorite(user *models.User, startupID string) error
	ListFavorites(user *models.User) ([]models.Favorite, error)

	ExpressInterest(user *models.User, startupID string, req *dto.ExpressInterestRequest) (*models.Interest, error)
	ListOwnInterests(user *models.User) ([]models.Interest, error)
	ListStartupInterests(user *models.User, startupID string) ([]models.Interest, error)
}

type EngagementServiceImpl struct {
	favoriteRepo  repositories.FavoriteRepository
	interestRepo  repositories.InterestRepository
	startupRepo   repositories.StartupRepository
	messaging     MessagingService
	notifications NotificationService
	gate          *authz.Gate
}

func NewEngagementService(
	favoriteRepo repositories.FavoriteRepository,
	interestRepo repositories.InterestRepository,
	startupRepo repositories.StartupRepository,
	messaging MessagingService,
	notifications NotificationService,
	gate *authz.Gate,
) EngagementService {
	return &EngagementServiceImpl{
		favoriteRepo:  favoriteRepo,
		interestRepo:  interestRepo,
		startupRepo:   startupRepo,
		messaging:     messaging,
		notifications: notifications,
		gate:          gate,
	}
}

func (s *EngagementServiceImpl) AddFavorite(user *models.User, startupID string) error {
	if err := s.gate.Authorize(user, authz.ActionFavoriteManage, ""); err != nil {
		return err
	}
	if _, err := s.findStartup(startupID); err != nil {
		return err
	}

	if err := s.favoriteRepo.Add(user.ID, startupID); err != nil {
		if errors.Is(err, repositories.ErrAlreadyFavorited) {
			// Favoriting twice is a no-op.
			return nil
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *EngagementServiceImpl) RemoveFavorite(user *models.User, startupID string) error {
	if err := s.gate.Authorize(user, authz.ActionFavoriteManage, ""); err != nil {
		return err
	}

	if err := s.favoriteRepo.Remove(user.ID, startupID); err != nil {
		if errors.Is(err, repositories.ErrFavoriteNotFound) {
			return apperrors.NewNotFoundError("favorite", "Startup is not in favorites")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *EngagementServiceImpl) ListFavorites(user *models.User) ([]models.Favorite, error) {
	if err := s.gate.Authorize(user, authz.ActionFavoriteManage, ""); err != nil {
		return nil, err
	}

	favorites, err := s.favoriteRepo.ListByUser(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return favorites, nil
}

// ExpressInterest records interest, notifies the owner and makes sure a
// conversation between the two exists, seeding it with the interest message.
func (s *EngagementServiceImpl) ExpressInterest(user *models.User, startupID string, req *dto.ExpressInterestRequest) (*models.Interest, error) {
	if err := s.gate.Authorize(user, authz.ActionInterestExpress, ""); err != nil {
		return nil, err
	}
	startup, err := s.findStartup(startupID)
	if err != nil {
		return nil, err
	}
	if startup.OwnerID == user.ID {
		return nil, apperrors.NewBadRequestError("Cannot express interest in your own startup")
	}

	interest := &models.Interest{
		UserID:    user.ID,
		StartupID: startupID,
		Message:   req.Message,
	}
	if err := s.interestRepo.Create(interest); err != nil {
		if errors.Is(err, repositories.ErrInterestExists) {
			return nil, apperrors.New(apperrors.CodeConflict, "interest",
				"Interest already expressed for this startup", 409)
		}
		return nil, apperrors.InternalError(err)
	}

	s.notifications.NotifyBestEffort(startup.OwnerID, "new_interest",
		"New interest in your startup",
		fmt.Sprintf("%s is interested in %s", user.Username, startup.Title),
		map[string]interface{}{
			"startup_id":  startup.ID,
			"interest_id": interest.ID,
		})

	opening := req.Message
	if opening == "" {
		opening = fmt.Sprintf("Hi, I'm interested in %s.", startup.Title)
	}
	if _, err := s.messaging.EnsureConversation(user, startup.OwnerID, startup.Title, opening); err != nil {
		// The interest row is already recorded; a failed conversation seed
		// should not roll it back.
		logger.WithError(err).Warn("failed to seed interest conversation",
			"user_id", user.ID, "startup_id", startup.ID)
		return interest, nil
	}

	return interest, nil
}

func (s *EngagementServiceImpl) ListOwnInterests(user *models.User) ([]models.Interest, error) {
	if user == nil {
		return nil, apperrors.NewUnauthorizedError("Authentication required")
	}

	interests, err := s.interestRepo.ListByUser(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return interests, nil
}

func (s *EngagementServiceImpl) ListStartupInterests(user *models.User, startupID string) ([]models.Interest, error) {
	startup, err := s.findStartup(startupID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(user, authz.ActionInterestList, startup.OwnerID); err != nil {
		return nil, err
	}

	interests, err := s.interestRepo.ListByStartup(startupID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return interests, nil
}

func (s *EngagementServiceImpl) findStartup(startupID string) (*models.Startup, error) {
	startup, err := s.startupRepo.FindByID(startupID)
	if err != nil {
		if errors.Is(err, repositories.ErrStartupNotFound) {
			return nil, apperrors.ErrStartupNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return startup, nil
}
