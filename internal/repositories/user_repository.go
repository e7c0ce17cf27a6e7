package repositories

import (
	"errors"
	"time"

	"startuphub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
)

type UserRepository interface {
	Create(user *models.User) error
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	Update(user *models.User) error
	SetEmailVerified(userID string) error
	UpdatePassword(userID, passwordHash string) error

	// BumpTokensValidFrom moves the revocation cutoff forward. The cutoff is
	// monotonic (an earlier timestamp never overwrites a later one) and is
	// stored at whole-second precision to match token iat claims.
	BumpTokensValidFrom(userID string, cutoff time.Time) error

	Search(query string, limit, offset int) ([]models.User, error)
	CountAll() (int64, error)
	CountVerified() (int64, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	var count int64
	if err := r.db.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailTaken
	}
	if err := r.db.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUsernameTaken
	}
	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepositoryImpl) SetEmailVerified(userID string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("email_verified", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdatePassword(userID, passwordHash string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) BumpTokensValidFrom(userID string, cutoff time.Time) error {
	cutoff = cutoff.Truncate(time.Second)
	result := r.db.Model(&models.User{}).
		Where("id = ? AND (tokens_valid_from IS NULL OR tokens_valid_from < ?)", userID, cutoff).
		Update("tokens_valid_from", cutoff)
	if result.Error != nil {
		return result.Error
	}
	// RowsAffected == 0 means either the user is gone or a later cutoff is
	// already in place; both are fine for revocation.
	return nil
}

func (r *UserRepositoryImpl) Search(query string, limit, offset int) ([]models.User, error) {
	var users []models.User
	like := "%" + query + "%"
	err := r.db.Where("username LIKE ? OR email LIKE ?", like, like).
		Where("is_active = ?", true).
		Limit(limit).Offset(offset).
		Order("created_at DESC").
		Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *UserRepositoryImpl) CountVerified() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email_verified = ?", true).Count(&count).Error
	return count, err
}
