package services

import (
	"errors"
	"fmt"

	"startuphub_backend/internal/authz"
	"startuphub_backend/internal/models"
	"startuphub_backend/internal/repositories"
	"startuphub_backend/internal/services/dto"
	"startuphub_backend/pkg/apperrors"
)

type ApplicationService interface {
	Apply(user *models.User, startupID string, req *dto.ApplyRequest) (*models.Application, error)
	ListOwn(user *models.User) ([]models.Application, error)
	ListForStartup(user *models.User, startupID string) ([]models.Application, error)
	Decide(user *models.User, applicationID string, approve bool) (*models.Application, error)
}

type ApplicationServiceImpl struct {
	applicationRepo repositories.ApplicationRepository
	positionRepo    repositories.PositionRepository
	startupRepo     repositories.StartupRepository
	notifications   NotificationService
	gate            *authz.Gate
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	positionRepo repositories.PositionRepository,
	startupRepo repositories.StartupRepository,
	notifications NotificationService,
	gate *authz.Gate,
) ApplicationService {
	return &ApplicationServiceImpl{
		applicationRepo: applicationRepo,
		positionRepo:    positionRepo,
		startupRepo:     startupRepo,
		notifications:   notifications,
		gate:            gate,
	}
}

// Apply submits an application for a position on a collaboration startup and
// notifies the startup owner.
func (s *ApplicationServiceImpl) Apply(user *models.User, startupID string, req *dto.ApplyRequest) (*models.Application, error) {
	if err := s.gate.Authorize(user, authz.ActionApplicationApply, ""); err != nil {
		return nil, err
	}

	startup, err := s.startupRepo.FindByID(startupID)
	if err != nil {
		if errors.Is(err, repositories.ErrStartupNotFound) {
			return nil, apperrors.ErrStartupNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	position, err := s.positionRepo.FindByID(req.PositionID)
	if err != nil {
		if errors.Is(err, repositories.ErrPositionNotFound) {
			return nil, apperrors.ErrPositionNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if position.StartupID != startup.ID {
		return nil, apperrors.ErrPositionNotFound
	}
	if !position.IsActive {
		return nil, apperrors.ErrPositionClosed
	}

	exists, err := s.applicationRepo.ExistsForApplicant(position.ID, user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrAlreadyApplied
	}

	application := &models.Application{
		StartupID:   startup.ID,
		PositionID:  position.ID,
		ApplicantID: user.ID,
		Status:      models.ApplicationStatusPending,
		CoverLetter: req.CoverLetter,
		ResumePath:  req.ResumePath,
	}
	if err := s.applicationRepo.Create(application); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifications.NotifyBestEffort(startup.OwnerID, "new_application",
		"New application received",
		fmt.Sprintf("%s applied for %s at %s", user.Username, position.Title, startup.Title),
		map[string]interface{}{
			"startup_id":     startup.ID,
			"position_id":    position.ID,
			"application_id": application.ID,
		})

	return application, nil
}

func (s *ApplicationServiceImpl) ListOwn(user *models.User) ([]models.Application, error) {
	if user == nil {
		return nil, apperrors.NewUnauthorizedError("Authentication required")
	}

	applications, err := s.applicationRepo.ListByApplicant(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return applications, nil
}

func (s *ApplicationServiceImpl) ListForStartup(user *models.User, startupID string) ([]models.Application, error) {
	startup, err := s.startupRepo.FindByID(startupID)
	if err != nil {
		if errors.Is(err, repositories.ErrStartupNotFound) {
			return nil, apperrors.ErrStartupNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if err := s.gate.Authorize(user, authz.ActionApplicationList, startup.OwnerID); err != nil {
		return nil, err
	}

	applications, err := s.applicationRepo.ListByStartup(startupID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return applications, nil
}

// Decide approves or declines a pending application and notifies the
// applicant.
func (s *ApplicationServiceImpl) Decide(user *models.User, applicationID string, approve bool) (*models.Application, error) {
	application, err := s.applicationRepo.FindByID(applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if application.Startup == nil {
		return nil, apperrors.ErrStartupNotFound
	}
	if err := s.gate.Authorize(user, authz.ActionApplicationDecide, application.Startup.OwnerID); err != nil {
		return nil, err
	}

	status := models.ApplicationStatusRejected
	title := "Application declined"
	if approve {
		status = models.ApplicationStatusApproved
		title = "Application approved"
	}

	if err := s.applicationRepo.UpdateStatus(application.ID, status); err != nil {
		return nil, apperrors.InternalError(err)
	}
	application.Status = status

	positionTitle := ""
	if application.Position != nil {
		positionTitle = application.Position.Title
	}
	s.notifications.NotifyBestEffort(application.ApplicantID, "application_status",
		title,
		fmt.Sprintf("Your application for %s at %s was %s", positionTitle, application.Startup.Title, status),
		map[string]interface{}{
			"startup_id":     application.StartupID,
			"application_id": application.ID,
			"status":         string(status),
		})

	return application, nil
}
