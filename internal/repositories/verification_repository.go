package repositories

import (
	"errors"
	"time"

	"startuphub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCodeNotFound = errors.New("verification code not found")

type VerificationCodeRepository interface {
	// Create stores a fresh code after consuming any still-live ones, so at
	// most one code per user is redeemable at a time.
	Create(code *models.EmailVerificationCode) error

	// FindLive returns the user's live code matching the given value.
	FindLive(userID, code string) (*models.EmailVerificationCode, error)

	// Consume marks the code as used.
	Consume(id string) error

	// ConsumeAllForUser retires every live code the user still has.
	ConsumeAllForUser(userID string) error

	CleanExpired() error
}

type VerificationCodeRepositoryImpl struct {
	db *gorm.DB
}

func NewVerificationCodeRepository(db *gorm.DB) VerificationCodeRepository {
	return &VerificationCodeRepositoryImpl{db: db}
}

func (r *VerificationCodeRepositoryImpl) Create(code *models.EmailVerificationCode) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := tx.Model(&models.EmailVerificationCode{}).
			Where("user_id = ? AND consumed_at IS NULL", code.UserID).
			Update("consumed_at", now).Error; err != nil {
			return err
		}
		return tx.Create(code).Error
	})
}

func (r *VerificationCodeRepositoryImpl) FindLive(userID, code string) (*models.EmailVerificationCode, error) {
	var record models.EmailVerificationCode
	err := r.db.Where("user_id = ? AND code = ? AND consumed_at IS NULL AND expires_at > ?",
		userID, code, time.Now()).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *VerificationCodeRepositoryImpl) Consume(id string) error {
	now := time.Now()
	result := r.db.Model(&models.EmailVerificationCode{}).
		Where("id = ? AND consumed_at IS NULL", id).
		Update("consumed_at", now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCodeNotFound
	}
	return nil
}

func (r *VerificationCodeRepositoryImpl) ConsumeAllForUser(userID string) error {
	return r.db.Model(&models.EmailVerificationCode{}).
		Where("user_id = ? AND consumed_at IS NULL", userID).
		Update("consumed_at", time.Now()).Error
}

func (r *VerificationCodeRepositoryImpl) CleanExpired() error {
	return r.db.Where("expires_at < ?", time.Now()).
		Delete(&models.EmailVerificationCode{}).Error
}
