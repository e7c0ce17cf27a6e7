package database

import (
	"startuphub_backend/internal/models"

	"gorm.io/gorm"
)

// Migrate applies the schema for every model. Kept in dependency order so
// foreign keys resolve.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.EmailVerificationCode{},
		&models.UserSession{},
		&models.SessionRecord{},
		&models.Startup{},
		&models.StartupTag{},
		&models.Position{},
		&models.Application{},
		&models.Notification{},
		&models.Favorite{},
		&models.Interest{},
		&models.Conversation{},
		&models.ConversationParticipant{},
		&models.Message{},
		&models.FileUpload{},
	)
}
