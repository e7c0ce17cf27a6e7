package dto

import "startuphub_backend/internal/models"

type CreateNotificationRequest struct {
	Type    string                 `json:"type" binding:"required,oneof=new_application application_status new_interest general"`
	Title   string                 `json:"title" binding:"required"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

type ListNotificationsQuery struct {
	UnreadOnly bool `form:"unread_only"`
	Page       int  `form:"page" binding:"omitempty,min=1"`
	PageSize   int  `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type NotificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unread_count"`
}
