package services

import (
	"startuphub_backend/internal/models"
	"startuphub_backend/internal/repositories"
	"startuphub_backend/internal/services/dto"
	"startuphub_backend/pkg/apperrors"
)

// SearchService backs the cross-entity search endpoint and the public
// platform counters. Plain LIKE queries, no ranking.
type SearchService interface {
	Search(query *dto.SearchQuery) (*dto.SearchResponse, error)
	PlatformStats() (*dto.PlatformStats, error)
}

type SearchServiceImpl struct {
	startupRepo  repositories.StartupRepository
	positionRepo repositories.PositionRepository
	userRepo     repositories.UserRepository
}

func NewSearchService(
	startupRepo repositories.StartupRepository,
	positionRepo repositories.PositionRepository,
	userRepo repositories.UserRepository,
) SearchService {
	return &SearchServiceImpl{
		startupRepo:  startupRepo,
		positionRepo: positionRepo,
		userRepo:     userRepo,
	}
}

func (s *SearchServiceImpl) Search(query *dto.SearchQuery) (*dto.SearchResponse, error) {
	limit := query.Limit
	if limit < 1 {
		limit = 10
	}
	searchType := query.Type
	if searchType == "" {
		searchType = "all"
	}

	response := &dto.SearchResponse{}

	if searchType == "startups" || searchType == "all" {
		startups, _, err := s.startupRepo.List(repositories.StartupFilter{
			Status: models.StartupStatusActive,
			Search: query.Query,
			Limit:  limit,
		})
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		response.Startups = startups
	}

	if searchType == "positions" || searchType == "all" {
		positions, _, err := s.positionRepo.List(repositories.PositionFilter{
			Search:     query.Query,
			ActiveOnly: true,
			Limit:      limit,
		})
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		response.Positions = positions
	}

	if searchType == "users" || searchType == "all" {
		users, err := s.userRepo.Search(query.Query, limit, 0)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		results := make([]dto.UserResponse, 0, len(users))
		for i := range users {
			results = append(results, *dto.NewUserResponse(&users[i]))
		}
		response.Users = results
	}

	return response, nil
}

func (s *SearchServiceImpl) PlatformStats() (*dto.PlatformStats, error) {
	stats := &dto.PlatformStats{}
	var err error

	if stats.TotalUsers, err = s.userRepo.CountAll(); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.VerifiedUsers, err = s.userRepo.CountVerified(); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.TotalStartups, err = s.startupRepo.CountAll(); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.Marketplace, err = s.startupRepo.CountByType(models.StartupTypeMarketplace); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.Collaborations, err = s.startupRepo.CountByType(models.StartupTypeCollaboration); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.ActivePositions, err = s.positionRepo.CountActive(); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return stats, nil
}
