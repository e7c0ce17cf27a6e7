package services

import (
	"errors"

	"startuphub_backend/internal/authz"
	"startuphub_backend/internal/logger"
	"startuphub_backend/internal/models"
	"startuphub_backend/internal/repositories"
	"startuphub_backend/internal/services/dto"
	"startuphub_backend/pkg/apperrors"
)

const defaultPageSize = 20

type StartupService interface {
	Create(user *models.User, req *dto.CreateStartupRequest) (*models.Startup, error)
	GetByID(id string, countView bool) (*models.Startup, error)
	Update(user *models.User, id string, req *dto.UpdateStartupRequest) (*models.Startup, error)
	ListMarketplace(query *dto.ListStartupsQuery) (*dto.StartupListResponse, error)
	ListCollaborations(query *dto.ListStartupsQuery) (*dto.StartupListResponse, error)
	ListOwned(user *models.User) ([]models.Startup, error)
}

type StartupServiceImpl struct {
	startupRepo repositories.StartupRepository
	gate        *authz.Gate
}

func NewStartupService(startupRepo repositories.StartupRepository, gate *authz.Gate) StartupService {
	return &StartupServiceImpl{startupRepo: startupRepo, gate: gate}
}

func (s *StartupServiceImpl) Create(user *models.User, req *dto.CreateStartupRequest) (*models.Startup, error) {
	if err := s.gate.Authorize(user, authz.ActionStartupCreate, ""); err != nil {
		return nil, err
	}

	startup := &models.Startup{
		OwnerID:     user.ID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Status:      models.StartupStatusActive,
		Category:    req.Category,
		Field:       req.Field,
		Phase:       req.Phase,
		TeamSize:    req.TeamSize,
		EarnThrough: req.EarnThrough,
		AskingPrice: req.AskingPrice,
	}

	if err := s.startupRepo.Create(startup); err != nil {
		return nil, apperrors.InternalError(err)
	}

	tags := req.Tags
	if len(tags) == 0 {
		// Every listing carries at least its kind as a tag.
		tags = []string{string(req.Type)}
	}
	if err := s.startupRepo.ReplaceTags(startup.ID, tags); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.GetByID(startup.ID, false)
}

func (s *StartupServiceImpl) GetByID(id string, countView bool) (*models.Startup, error) {
	startup, err := s.startupRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrStartupNotFound) {
			return nil, apperrors.ErrStartupNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if countView {
		if err := s.startupRepo.IncrementViews(id); err != nil {
			// A lost view count is not worth failing the request.
			logger.WithError(err).Warn("failed to increment startup views", "startup_id", id)
		}
	}
	return startup, nil
}

func (s *StartupServiceImpl) Update(user *models.User, id string, req *dto.UpdateStartupRequest) (*models.Startup, error) {
	startup, err := s.GetByID(id, false)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(user, authz.ActionStartupUpdate, startup.OwnerID); err != nil {
		return nil, err
	}

	if req.Title != "" {
		startup.Title = req.Title
	}
	if req.Description != "" {
		startup.Description = req.Description
	}
	if req.Category != "" {
		startup.Category = req.Category
	}
	if req.Field != "" {
		startup.Field = req.Field
	}
	if req.Phase != "" {
		startup.Phase = req.Phase
	}
	if req.TeamSize != "" {
		startup.TeamSize = req.TeamSize
	}
	if req.EarnThrough != "" {
		startup.EarnThrough = req.EarnThrough
	}
	if req.AskingPrice != nil {
		startup.AskingPrice = *req.AskingPrice
	}
	if req.Status != nil {
		startup.Status = *req.Status
	}

	if err := s.startupRepo.Update(startup); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if req.Tags != nil {
		if err := s.startupRepo.ReplaceTags(startup.ID, req.Tags); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	return s.GetByID(startup.ID, false)
}

func (s *StartupServiceImpl) ListMarketplace(query *dto.ListStartupsQuery) (*dto.StartupListResponse, error) {
	return s.list(models.StartupTypeMarketplace, query)
}

func (s *StartupServiceImpl) ListCollaborations(query *dto.ListStartupsQuery) (*dto.StartupListResponse, error) {
	return s.list(models.StartupTypeCollaboration, query)
}

func (s *StartupServiceImpl) list(startupType models.StartupType, query *dto.ListStartupsQuery) (*dto.StartupListResponse, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	filter := repositories.StartupFilter{
		Type:     startupType,
		Status:   models.StartupStatusActive,
		Category: query.Category,
		Search:   query.Search,
		SortBy:   query.SortBy,
		Limit:    pageSize,
		Offset:   (page - 1) * pageSize,
	}

	startups, total, err := s.startupRepo.List(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.StartupListResponse{
		Startups: startups,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *StartupServiceImpl) ListOwned(user *models.User) ([]models.Startup, error) {
	if err := s.gate.Authorize(user, authz.ActionStartupViewOwned, ""); err != nil {
		return nil, err
	}

	startups, err := s.startupRepo.ListByOwner(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return startups, nil
}
