package services

import (
	"errors"

	"startuphub_backend/internal/authz"
	"startuphub_backend/internal/models"
	"startuphub_backend/internal/repositories"
	"startuphub_backend/internal/services/dto"
	"startuphub_backend/pkg/apperrors"
)

type PositionService interface {
	Create(user *models.User, startupID string, req *dto.CreatePositionRequest) (*models.Position, error)
	Update(user *models.User, positionID string, req *dto.UpdatePositionRequest) (*models.Position, error)
	SetOpen(user *models.User, positionID string, open bool) (*models.Position, error)
	List(query *dto.ListPositionsQuery) (*dto.PositionListResponse, error)
	ListByStartup(startupID string) ([]models.Position, error)
}

type PositionServiceImpl struct {
	positionRepo repositories.PositionRepository
	startupRepo  repositories.StartupRepository
	gate         *authz.Gate
}

func NewPositionService(
	positionRepo repositories.PositionRepository,
	startupRepo repositories.StartupRepository,
	gate *authz.Gate,
) PositionService {
	return &PositionServiceImpl{
		positionRepo: positionRepo,
		startupRepo:  startupRepo,
		gate:         gate,
	}
}

func (s *PositionServiceImpl) Create(user *models.User, startupID string, req *dto.CreatePositionRequest) (*models.Position, error) {
	startup, err := s.startupRepo.FindByID(startupID)
	if err != nil {
		if errors.Is(err, repositories.ErrStartupNotFound) {
			return nil, apperrors.ErrStartupNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if err := s.gate.Authorize(user, authz.ActionPositionCreate, startup.OwnerID); err != nil {
		return nil, err
	}

	position := &models.Position{
		StartupID:    startupID,
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		IsActive:     true,
	}
	if err := s.positionRepo.Create(position); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return position, nil
}

func (s *PositionServiceImpl) Update(user *models.User, positionID string, req *dto.UpdatePositionRequest) (*models.Position, error) {
	position, err := s.findWithOwner(positionID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(user, authz.ActionPositionUpdate, position.Startup.OwnerID); err != nil {
		return nil, err
	}

	if req.Title != "" {
		position.Title = req.Title
	}
	if req.Description != "" {
		position.Description = req.Description
	}
	if req.Requirements != "" {
		position.Requirements = req.Requirements
	}

	if err := s.positionRepo.Update(position); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return position, nil
}

func (s *PositionServiceImpl) SetOpen(user *models.User, positionID string, open bool) (*models.Position, error) {
	position, err := s.findWithOwner(positionID)
	if err != nil {
		return nil, err
	}

	action := authz.ActionPositionClose
	if open {
		action = authz.ActionPositionOpen
	}
	if err := s.gate.Authorize(user, action, position.Startup.OwnerID); err != nil {
		return nil, err
	}

	if err := s.positionRepo.SetActive(positionID, open); err != nil {
		return nil, apperrors.InternalError(err)
	}
	position.IsActive = open
	return position, nil
}

func (s *PositionServiceImpl) List(query *dto.ListPositionsQuery) (*dto.PositionListResponse, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	positions, total, err := s.positionRepo.List(repositories.PositionFilter{
		Search:     query.Search,
		ActiveOnly: true,
		Limit:      pageSize,
		Offset:     (page - 1) * pageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.PositionListResponse{
		Positions: positions,
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	}, nil
}

func (s *PositionServiceImpl) ListByStartup(startupID string) ([]models.Position, error) {
	if _, err := s.startupRepo.FindByID(startupID); err != nil {
		if errors.Is(err, repositories.ErrStartupNotFound) {
			return nil, apperrors.ErrStartupNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	positions, err := s.positionRepo.ListByStartup(startupID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return positions, nil
}

func (s *PositionServiceImpl) findWithOwner(positionID string) (*models.Position, error) {
	position, err := s.positionRepo.FindByID(positionID)
	if err != nil {
		if errors.Is(err, repositories.ErrPositionNotFound) {
			return nil, apperrors.ErrPositionNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if position.Startup == nil {
		return nil, apperrors.ErrStartupNotFound
	}
	return position, nil
}
