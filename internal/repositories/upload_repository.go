package repositories

import (
	"errors"

	"startuphub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrUploadNotFound = errors.New("upload not found")

type UploadRepository interface {
	Create(upload *models.FileUpload) error
	FindByID(id string) (*models.FileUpload, error)
	ListByUser(userID string, fileType string) ([]models.FileUpload, error)
	Deactivate(id string) error
}

type UploadRepositoryImpl struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &UploadRepositoryImpl{db: db}
}

func (r *UploadRepositoryImpl) Create(upload *models.FileUpload) error {
	return r.db.Create(upload).Error
}

func (r *UploadRepositoryImpl) FindByID(id string) (*models.FileUpload, error) {
	var upload models.FileUpload
	err := r.db.First(&upload, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUploadNotFound
		}
		return nil, err
	}
	return &upload, nil
}

func (r *UploadRepositoryImpl) ListByUser(userID string, fileType string) ([]models.FileUpload, error) {
	query := r.db.Where("user_id = ? AND is_active = ?", userID, true)
	if fileType != "" {
		query = query.Where("file_type = ?", fileType)
	}

	var uploads []models.FileUpload
	err := query.Order("created_at DESC").Find(&uploads).Error
	return uploads, err
}

func (r *UploadRepositoryImpl) Deactivate(id string) error {
	result := r.db.Model(&models.FileUpload{}).Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUploadNotFound
	}
	return nil
}
