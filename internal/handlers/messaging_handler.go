package handlers

import (
	"net/http"

	"startuphub_backend/internal/services"
	"startuphub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type MessagingHandler struct {
	*BaseHandler
	messagingService services.MessagingService
}

func NewMessagingHandler(base *BaseHandler, messagingService services.MessagingService) *MessagingHandler {
	return &MessagingHandler{
		BaseHandler:      base,
		messagingService: messagingService,
	}
}

func (h *MessagingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/conversations", h.List)
	rg.POST("/conversations", h.Start)
	rg.GET("/conversations/:id", h.Get)
	rg.GET("/conversations/:id/messages", h.ListMessages)
	rg.POST("/conversations/:id/messages", h.SendMessage)
}

func (h *MessagingHandler) List(c *gin.Context) {
	conversations, err := h.messagingService.ListConversations(h.OptionalUser(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

func (h *MessagingHandler) Start(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}
	var req dto.CreateConversationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	conversation, err := h.messagingService.StartConversation(user, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, conversation)
}

func (h *MessagingHandler) Get(c *gin.Context) {
	conversation, err := h.messagingService.GetConversation(h.OptionalUser(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, conversation)
}

func (h *MessagingHandler) ListMessages(c *gin.Context) {
	var query dto.ListMessagesQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	messages, err := h.messagingService.ListMessages(h.OptionalUser(c), c.Param("id"), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (h *MessagingHandler) SendMessage(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}
	var req dto.SendMessageRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	message, err := h.messagingService.SendMessage(user, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}
