package repositories

import (
	"errors"
	"time"

	"startuphub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrSessionNotFound       = errors.New("session not found")
	ErrLegacySessionNotFound = errors.New("legacy session not found")
)

// SessionRepository tracks refresh-token sessions. Tokens are stored hashed.
type SessionRepository interface {
	Create(session *models.UserSession) error
	FindByTokenHash(tokenHash string) (*models.UserSession, error)
	DeleteByTokenHash(tokenHash string) error
	DeleteByUserID(userID string) error
	ListByUserID(userID string) ([]models.UserSession, error)
	CleanExpired() error
}

type SessionRepositoryImpl struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &SessionRepositoryImpl{db: db}
}

func (r *SessionRepositoryImpl) Create(session *models.UserSession) error {
	return r.db.Create(session).Error
}

func (r *SessionRepositoryImpl) FindByTokenHash(tokenHash string) (*models.UserSession, error) {
	var session models.UserSession
	err := r.db.Where("token_hash = ? AND expires_at > ?", tokenHash, time.Now()).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepositoryImpl) DeleteByTokenHash(tokenHash string) error {
	return r.db.Where("token_hash = ?", tokenHash).Delete(&models.UserSession{}).Error
}

func (r *SessionRepositoryImpl) DeleteByUserID(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.UserSession{}).Error
}

func (r *SessionRepositoryImpl) ListByUserID(userID string) ([]models.UserSession, error) {
	var sessions []models.UserSession
	err := r.db.Where("user_id = ? AND expires_at > ?", userID, time.Now()).
		Order("created_at DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepositoryImpl) CleanExpired() error {
	return r.db.Where("expires_at < ?", time.Now()).Delete(&models.UserSession{}).Error
}

// LegacySessionRepository reads the server-side session rows written by the
// legacy web session layer. The auth core only resolves and expires them.
type LegacySessionRepository interface {
	FindByKey(sessionKey string) (*models.SessionRecord, error)
	FindByAuthToken(authToken string) (*models.SessionRecord, error)
	ExpireByUserID(userID string) error
}

type LegacySessionRepositoryImpl struct {
	db *gorm.DB
}

func NewLegacySessionRepository(db *gorm.DB) LegacySessionRepository {
	return &LegacySessionRepositoryImpl{db: db}
}

func (r *LegacySessionRepositoryImpl) FindByKey(sessionKey string) (*models.SessionRecord, error) {
	var record models.SessionRecord
	err := r.db.Where("session_key = ? AND expires_at > ?", sessionKey, time.Now()).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLegacySessionNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *LegacySessionRepositoryImpl) FindByAuthToken(authToken string) (*models.SessionRecord, error) {
	var record models.SessionRecord
	err := r.db.Where("auth_token = ? AND auth_token <> '' AND expires_at > ?", authToken, time.Now()).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLegacySessionNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *LegacySessionRepositoryImpl) ExpireByUserID(userID string) error {
	return r.db.Model(&models.SessionRecord{}).
		Where("user_id = ?", userID).
		Update("expires_at", time.Now()).Error
}
