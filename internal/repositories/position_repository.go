package repositories

import (
	"errors"
	"strings"

	"startuphub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPositionNotFound = errors.New("position not found")

type PositionFilter struct {
	StartupID  string
	Search     string
	ActiveOnly bool
	Limit      int
	Offset     int
}

type PositionRepository interface {
	Create(position *models.Position) error
	FindByID(id string) (*models.Position, error)
	Update(position *models.Position) error
	SetActive(id string, active bool) error
	List(filter PositionFilter) ([]models.Position, int64, error)
	ListByStartup(startupID string) ([]models.Position, error)
	CountActive() (int64, error)
}

type PositionRepositoryImpl struct {
	db *gorm.DB
}

func NewPositionRepository(db *gorm.DB) PositionRepository {
	return &PositionRepositoryImpl{db: db}
}

func (r *PositionRepositoryImpl) Create(position *models.Position) error {
	return r.db.Create(position).Error
}

func (r *PositionRepositoryImpl) FindByID(id string) (*models.Position, error) {
	var position models.Position
	err := r.db.Preload("Startup").First(&position, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPositionNotFound
		}
		return nil, err
	}
	return &position, nil
}

func (r *PositionRepositoryImpl) Update(position *models.Position) error {
	return r.db.Save(position).Error
}

func (r *PositionRepositoryImpl) SetActive(id string, active bool) error {
	result := r.db.Model(&models.Position{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPositionNotFound
	}
	return nil
}

func (r *PositionRepositoryImpl) List(filter PositionFilter) ([]models.Position, int64, error) {
	query := r.db.Model(&models.Position{})

	if filter.StartupID != "" {
		query = query.Where("startup_id = ?", filter.StartupID)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Search != "" {
		like := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var positions []models.Position
	err := query.Preload("Startup").Order("created_at DESC").Find(&positions).Error
	return positions, total, err
}

func (r *PositionRepositoryImpl) ListByStartup(startupID string) ([]models.Position, error) {
	var positions []models.Position
	err := r.db.Where("startup_id = ?", startupID).
		Order("created_at DESC").
		Find(&positions).Error
	return positions, err
}

func (r *PositionRepositoryImpl) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.Position{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
