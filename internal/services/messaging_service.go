package services

import (
	"errors"

	"startuphub_backend/internal/authz"
	"startuphub_backend/internal/models"
	"startuphub_backend/internal/repositories"
	"startuphub_backend/internal/services/dto"
	"startuphub_backend/pkg/apperrors"
)

type MessagingService interface {
	StartConversation(user *models.User, req *dto.CreateConversationRequest) (*models.Conversation, error)

	// EnsureConversation returns the direct conversation between user and
	// recipient, creating it with an opening message when absent.
	EnsureConversation(user *models.User, recipientID, title, opening string) (*models.Conversation, error)

	ListConversations(user *models.User) ([]dto.ConversationSummary, error)
	GetConversation(user *models.User, conversationID string) (*models.Conversation, error)
	ListMessages(user *models.User, conversationID string, query *dto.ListMessagesQuery) ([]models.Message, error)
	SendMessage(user *models.User, conversationID string, req *dto.SendMessageRequest) (*models.Message, error)
}

type MessagingServiceImpl struct {
	conversationRepo repositories.ConversationRepository
	userRepo         repositories.UserRepository
	gate             *authz.Gate
}

func NewMessagingService(
	conversationRepo repositories.ConversationRepository,
	userRepo repositories.UserRepository,
	gate *authz.Gate,
) MessagingService {
	return &MessagingServiceImpl{
		conversationRepo: conversationRepo,
		userRepo:         userRepo,
		gate:             gate,
	}
}

func (s *MessagingServiceImpl) StartConversation(user *models.User, req *dto.CreateConversationRequest) (*models.Conversation, error) {
	if err := s.gate.Authorize(user, authz.ActionMessageSend, ""); err != nil {
		return nil, err
	}
	if req.RecipientID == user.ID {
		return nil, apperrors.NewBadRequestError("Cannot start a conversation with yourself")
	}

	return s.EnsureConversation(user, req.RecipientID, req.Title, req.Message)
}

func (s *MessagingServiceImpl) EnsureConversation(user *models.User, recipientID, title, opening string) (*models.Conversation, error) {
	if user == nil {
		return nil, apperrors.NewUnauthorizedError("Authentication required")
	}

	recipient, err := s.userRepo.FindByID(recipientID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	conversation, err := s.conversationRepo.FindDirect(user.ID, recipient.ID)
	if err != nil && !errors.Is(err, repositories.ErrConversationNotFound) {
		return nil, apperrors.InternalError(err)
	}

	if conversation == nil {
		conversation = &models.Conversation{
			Title:    title,
			IsActive: true,
		}
		participants := []string{user.ID, recipient.ID}
		if err := s.conversationRepo.Create(conversation, participants); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	if opening != "" {
		message := &models.Message{
			ConversationID: conversation.ID,
			SenderID:       user.ID,
			Content:        opening,
			MessageType:    "text",
		}
		if err := s.conversationRepo.CreateMessage(message); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	return s.GetConversation(user, conversation.ID)
}

func (s *MessagingServiceImpl) ListConversations(user *models.User) ([]dto.ConversationSummary, error) {
	if err := s.gate.Authorize(user, authz.ActionConversationAccess, ""); err != nil {
		return nil, err
	}

	conversations, err := s.conversationRepo.ListByUser(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	summaries := make([]dto.ConversationSummary, 0, len(conversations))
	for i := range conversations {
		conversation := &conversations[i]
		last, err := s.conversationRepo.LastMessage(conversation.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		summaries = append(summaries, dto.ConversationSummary{
			ID:           conversation.ID,
			Title:        conversation.Title,
			Participants: conversation.Participants,
			LastMessage:  last,
			UpdatedAt:    conversation.UpdatedAt,
		})
	}
	return summaries, nil
}

func (s *MessagingServiceImpl) GetConversation(user *models.User, conversationID string) (*models.Conversation, error) {
	conversation, err := s.requireParticipant(user, conversationID)
	if err != nil {
		return nil, err
	}
	return conversation, nil
}

func (s *MessagingServiceImpl) ListMessages(user *models.User, conversationID string, query *dto.ListMessagesQuery) ([]models.Message, error) {
	if _, err := s.requireParticipant(user, conversationID); err != nil {
		return nil, err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = 50
	}

	messages, err := s.conversationRepo.ListMessages(conversationID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return messages, nil
}

func (s *MessagingServiceImpl) SendMessage(user *models.User, conversationID string, req *dto.SendMessageRequest) (*models.Message, error) {
	if err := s.gate.Authorize(user, authz.ActionMessageSend, ""); err != nil {
		return nil, err
	}
	if _, err := s.requireParticipant(user, conversationID); err != nil {
		return nil, err
	}

	messageType := req.MessageType
	if messageType == "" {
		messageType = "text"
	}
	message := &models.Message{
		ConversationID: conversationID,
		SenderID:       user.ID,
		Content:        req.Content,
		MessageType:    messageType,
	}
	if err := s.conversationRepo.CreateMessage(message); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return message, nil
}

// requireParticipant loads the conversation and refuses non-participants.
func (s *MessagingServiceImpl) requireParticipant(user *models.User, conversationID string) (*models.Conversation, error) {
	if user == nil {
		return nil, apperrors.NewUnauthorizedError("Authentication required")
	}

	conversation, err := s.conversationRepo.FindByID(conversationID)
	if err != nil {
		if errors.Is(err, repositories.ErrConversationNotFound) {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	member, err := s.conversationRepo.IsParticipant(conversationID, user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !member {
		return nil, apperrors.ErrNotParticipant
	}
	return conversation, nil
}
