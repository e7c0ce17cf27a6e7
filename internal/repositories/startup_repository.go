package repositories

import (
	"errors"
	"strings"

	"startuphub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrStartupNotFound = errors.New("startup not found")

// StartupFilter narrows and orders startup listings.
type StartupFilter struct {
	Type     models.StartupType
	Status   models.StartupStatus
	Category string
	Search   string
	SortBy   string // newest, price_asc, price_desc, popular
	Limit    int
	Offset   int
}

type StartupRepository interface {
	Create(startup *models.Startup) error
	FindByID(id string) (*models.Startup, error)
	Update(startup *models.Startup) error
	UpdateStatus(id string, status models.StartupStatus) error
	List(filter StartupFilter) ([]models.Startup, int64, error)
	ListByOwner(ownerID string) ([]models.Startup, error)
	IncrementViews(id string) error
	ReplaceTags(startupID string, tags []string) error
	CountByType(startupType models.StartupType) (int64, error)
	CountAll() (int64, error)
}

type StartupRepositoryImpl struct {
	db *gorm.DB
}

func NewStartupRepository(db *gorm.DB) StartupRepository {
	return &StartupRepositoryImpl{db: db}
}

func (r *StartupRepositoryImpl) Create(startup *models.Startup) error {
	return r.db.Create(startup).Error
}

func (r *StartupRepositoryImpl) FindByID(id string) (*models.Startup, error) {
	var startup models.Startup
	err := r.db.Preload("Owner").Preload("Tags").Preload("Positions").
		First(&startup, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStartupNotFound
		}
		return nil, err
	}
	return &startup, nil
}

func (r *StartupRepositoryImpl) Update(startup *models.Startup) error {
	return r.db.Save(startup).Error
}

func (r *StartupRepositoryImpl) UpdateStatus(id string, status models.StartupStatus) error {
	result := r.db.Model(&models.Startup{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStartupNotFound
	}
	return nil
}

func (r *StartupRepositoryImpl) List(filter StartupFilter) ([]models.Startup, int64, error) {
	query := r.db.Model(&models.Startup{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		like := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.SortBy {
	case "price_asc":
		query = query.Order("asking_price ASC")
	case "price_desc":
		query = query.Order("asking_price DESC")
	case "popular":
		query = query.Order("views DESC")
	default:
		query = query.Order("created_at DESC")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var startups []models.Startup
	err := query.Preload("Owner").Preload("Tags").Find(&startups).Error
	return startups, total, err
}

func (r *StartupRepositoryImpl) ListByOwner(ownerID string) ([]models.Startup, error) {
	var startups []models.Startup
	err := r.db.Where("owner_id = ?", ownerID).
		Preload("Tags").Preload("Positions").
		Order("created_at DESC").
		Find(&startups).Error
	return startups, err
}

func (r *StartupRepositoryImpl) IncrementViews(id string) error {
	return r.db.Model(&models.Startup{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *StartupRepositoryImpl) ReplaceTags(startupID string, tags []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("startup_id = ?", startupID).Delete(&models.StartupTag{}).Error; err != nil {
			return err
		}
		for _, tag := range tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			if err := tx.Create(&models.StartupTag{StartupID: startupID, Tag: tag}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *StartupRepositoryImpl) CountByType(startupType models.StartupType) (int64, error) {
	var count int64
	err := r.db.Model(&models.Startup{}).Where("type = ?", startupType).Count(&count).Error
	return count, err
}

func (r *StartupRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.Startup{}).Count(&count).Error
	return count, err
}
