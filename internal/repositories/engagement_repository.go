package repositories

import (
	"errors"

	"startuphub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrAlreadyFavorited = errors.New("startup already in favorites")
	ErrInterestExists   = errors.New("interest already expressed")
)

// FavoriteRepository manages saved startups.
type FavoriteRepository interface {
	Add(userID, startupID string) error
	Remove(userID, startupID string) error
	Exists(userID, startupID string) (bool, error)
	ListByUser(userID string) ([]models.Favorite, error)
}

type FavoriteRepositoryImpl struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &FavoriteRepositoryImpl{db: db}
}

func (r *FavoriteRepositoryImpl) Add(userID, startupID string) error {
	exists, err := r.Exists(userID, startupID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyFavorited
	}
	return r.db.Create(&models.Favorite{UserID: userID, StartupID: startupID}).Error
}

func (r *FavoriteRepositoryImpl) Remove(userID, startupID string) error {
	result := r.db.Where("user_id = ? AND startup_id = ?", userID, startupID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (r *FavoriteRepositoryImpl) Exists(userID, startupID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Favorite{}).
		Where("user_id = ? AND startup_id = ?", userID, startupID).
		Count(&count).Error
	return count > 0, err
}

func (r *FavoriteRepositoryImpl) ListByUser(userID string) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := r.db.Where("user_id = ?", userID).
		Preload("Startup").Preload("Startup.Owner").
		Order("created_at DESC").
		Find(&favorites).Error
	return favorites, err
}

// InterestRepository manages expressed interest in startups.
type InterestRepository interface {
	Create(interest *models.Interest) error
	Exists(userID, startupID string) (bool, error)
	ListByUser(userID string) ([]models.Interest, error)
	ListByStartup(startupID string) ([]models.Interest, error)
}

type InterestRepositoryImpl struct {
	db *gorm.DB
}

func NewInterestRepository(db *gorm.DB) InterestRepository {
	return &InterestRepositoryImpl{db: db}
}

func (r *InterestRepositoryImpl) Create(interest *models.Interest) error {
	exists, err := r.Exists(interest.UserID, interest.StartupID)
	if err != nil {
		return err
	}
	if exists {
		return ErrInterestExists
	}
	return r.db.Create(interest).Error
}

func (r *InterestRepositoryImpl) Exists(userID, startupID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Interest{}).
		Where("user_id = ? AND startup_id = ?", userID, startupID).
		Count(&count).Error
	return count > 0, err
}

func (r *InterestRepositoryImpl) ListByUser(userID string) ([]models.Interest, error) {
	var interests []models.Interest
	err := r.db.Where("user_id = ?", userID).
		Preload("Startup").
		Order("created_at DESC").
		Find(&interests).Error
	return interests, err
}

func (r *InterestRepositoryImpl) ListByStartup(startupID string) ([]models.Interest, error) {
	var interests []models.Interest
	err := r.db.Where("startup_id = ?", startupID).
		Preload("User").
		Order("created_at DESC").
		Find(&interests).Error
	return interests, err
}
