package dto

import (
	"time"

	"startuphub_backend/internal/models"
)

type CreateConversationRequest struct {
	RecipientID string `json:"recipient_id" binding:"required,uuid"`
	Title       string `json:"title"`
	Message     string `json:"message"`
}

type SendMessageRequest struct {
	Content     string `json:"content" binding:"required"`
	MessageType string `json:"message_type" binding:"omitempty,oneof=text system"`
}

// ConversationSummary is a listing row with its latest message.
type ConversationSummary struct {
	ID           string                           `json:"id"`
	Title        string                           `json:"title"`
	Participants []models.ConversationParticipant `json:"participants"`
	LastMessage  *models.Message                  `json:"last_message,omitempty"`
	UpdatedAt    time.Time                        `json:"updated_at"`
}

type ListMessagesQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=200"`
}

type ExpressInterestRequest struct {
	Message string `json:"message"`
}
