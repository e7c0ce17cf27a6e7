package services

import (
	"encoding/json"
	"errors"

	"startuphub_backend/internal/logger"
	"startuphub_backend/internal/models"
	"startuphub_backend/internal/repositories"
	"startuphub_backend/internal/services/dto"
	"startuphub_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type NotificationService interface {
	Create(userID string, req *dto.CreateNotificationRequest) (*models.Notification, error)

	// NotifyBestEffort creates a notification and only logs on failure.
	// Used for side-effect notifications that must not fail the request.
	NotifyBestEffort(userID, notifType, title, message string, data map[string]interface{})

	List(user *models.User, query *dto.ListNotificationsQuery) (*dto.NotificationListResponse, error)
	MarkRead(user *models.User, notificationID string) error
	MarkAllRead(user *models.User) error
}

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &NotificationServiceImpl{notificationRepo: notificationRepo}
}

func (s *NotificationServiceImpl) Create(userID string, req *dto.CreateNotificationRequest) (*models.Notification, error) {
	notification := &models.Notification{
		UserID:  userID,
		Type:    req.Type,
		Title:   req.Title,
		Message: req.Message,
	}
	if req.Data != nil {
		payload, err := json.Marshal(req.Data)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid notification data")
		}
		notification.Data = datatypes.JSON(payload)
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return notification, nil
}

func (s *NotificationServiceImpl) NotifyBestEffort(userID, notifType, title, message string, data map[string]interface{}) {
	_, err := s.Create(userID, &dto.CreateNotificationRequest{
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    data,
	})
	if err != nil {
		logger.WithError(err).Warn("failed to create notification",
			"user_id", userID, "type", notifType)
	}
}

func (s *NotificationServiceImpl) List(user *models.User, query *dto.ListNotificationsQuery) (*dto.NotificationListResponse, error) {
	if user == nil {
		return nil, apperrors.NewUnauthorizedError("Authentication required")
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	notifications, err := s.notificationRepo.ListByUser(user.ID, query.UnreadOnly, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	unread, err := s.notificationRepo.CountUnread(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.NotificationListResponse{
		Notifications: notifications,
		UnreadCount:   unread,
	}, nil
}

func (s *NotificationServiceImpl) MarkRead(user *models.User, notificationID string) error {
	notification, err := s.notificationRepo.FindByID(notificationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return apperrors.InternalError(err)
	}
	if user == nil {
		return apperrors.NewUnauthorizedError("Authentication required")
	}
	if notification.UserID != user.ID {
		return apperrors.NewForbiddenError("You do not own this notification")
	}

	if err := s.notificationRepo.MarkRead(notificationID); err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) MarkAllRead(user *models.User) error {
	if user == nil {
		return apperrors.NewUnauthorizedError("Authentication required")
	}
	if err := s.notificationRepo.MarkAllRead(user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
