package repositories

import (
	"errors"

	"startuphub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrConversationNotFound = errors.New("conversation not found")

type ConversationRepository interface {
	// Create stores a conversation with its participant rows in one
	// transaction.
	Create(conversation *models.Conversation, participantIDs []string) error

	FindByID(id string) (*models.Conversation, error)
	ListByUser(userID string) ([]models.Conversation, error)
	IsParticipant(conversationID, userID string) (bool, error)

	// FindDirect returns an existing active conversation whose participant
	// set is exactly the two given users, or ErrConversationNotFound.
	FindDirect(userA, userB string) (*models.Conversation, error)

	CreateMessage(message *models.Message) error
	ListMessages(conversationID string, limit, offset int) ([]models.Message, error)
	LastMessage(conversationID string) (*models.Message, error)
}

type ConversationRepositoryImpl struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &ConversationRepositoryImpl{db: db}
}

func (r *ConversationRepositoryImpl) Create(conversation *models.Conversation, participantIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conversation).Error; err != nil {
			return err
		}
		for _, userID := range participantIDs {
			participant := &models.ConversationParticipant{
				ConversationID: conversation.ID,
				UserID:         userID,
			}
			if err := tx.Create(participant).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ConversationRepositoryImpl) FindByID(id string) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.db.Preload("Participants").Preload("Participants.User").
		First(&conversation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return &conversation, nil
}

func (r *ConversationRepositoryImpl) ListByUser(userID string) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.db.
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id").
		Where("cp.user_id = ? AND conversations.is_active = ?", userID, true).
		Preload("Participants").Preload("Participants.User").
		Order("conversations.updated_at DESC").
		Find(&conversations).Error
	return conversations, err
}

func (r *ConversationRepositoryImpl) IsParticipant(conversationID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *ConversationRepositoryImpl) FindDirect(userA, userB string) (*models.Conversation, error) {
	var conversationID string
	err := r.db.Model(&models.ConversationParticipant{}).
		Select("conversation_id").
		Where("user_id IN ?", []string{userA, userB}).
		Group("conversation_id").
		Having("COUNT(DISTINCT user_id) = 2").
		Limit(1).
		Scan(&conversationID).Error
	if err != nil {
		return nil, err
	}
	if conversationID == "" {
		return nil, ErrConversationNotFound
	}
	return r.FindByID(conversationID)
}

func (r *ConversationRepositoryImpl) CreateMessage(message *models.Message) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		// Bump the conversation so listings sort by recent activity.
		return tx.Model(&models.Conversation{}).
			Where("id = ?", message.ConversationID).
			Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
	})
}

func (r *ConversationRepositoryImpl) ListMessages(conversationID string, limit, offset int) ([]models.Message, error) {
	query := r.db.Where("conversation_id = ?", conversationID).
		Preload("Sender").
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var messages []models.Message
	err := query.Find(&messages).Error
	return messages, err
}

func (r *ConversationRepositoryImpl) LastMessage(conversationID string) (*models.Message, error) {
	var message models.Message
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}
