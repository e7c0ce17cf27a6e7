package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"startuphub_backend/internal/logger"
	"startuphub_backend/internal/models"
	"startuphub_backend/internal/repositories"
	"startuphub_backend/internal/services/dto"
	"startuphub_backend/internal/storage"
	"startuphub_backend/pkg/apperrors"
)

// Upload kinds accepted by the platform.
var uploadKinds = map[string][]string{
	"resume":          {"application/pdf", "application/msword", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	"startup_image":   {"image/jpeg", "image/png", "image/webp"},
	"profile_picture": {"image/jpeg", "image/png", "image/webp"},
}

type UploadService interface {
	Upload(ctx context.Context, user *models.User, fileType string, header *multipart.FileHeader) (*dto.UploadResponse, error)
	ListOwn(ctx context.Context, user *models.User) ([]dto.UploadResponse, error)
	Delete(ctx context.Context, user *models.User, uploadID string) error
}

type UploadServiceImpl struct {
	uploadRepo repositories.UploadRepository
	storage    storage.Storage
	maxSize    int64
}

func NewUploadService(uploadRepo repositories.UploadRepository, store storage.Storage, maxSize int64) UploadService {
	return &UploadServiceImpl{
		uploadRepo: uploadRepo,
		storage:    store,
		maxSize:    maxSize,
	}
}

func (s *UploadServiceImpl) Upload(ctx context.Context, user *models.User, fileType string, header *multipart.FileHeader) (*dto.UploadResponse, error) {
	if user == nil {
		return nil, apperrors.NewUnauthorizedError("Authentication required")
	}

	allowedTypes, ok := uploadKinds[fileType]
	if !ok {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown upload type: %s", fileType))
	}
	if header.Size > s.maxSize {
		return nil, apperrors.ErrFileTooLarge
	}

	mimeType := header.Header.Get("Content-Type")
	if !mimeAllowed(mimeType, allowedTypes) {
		return nil, apperrors.ErrFileTypeBlocked
	}

	file, err := header.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer file.Close()

	key, err := buildObjectKey(user.ID, fileType, header.Filename)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.storage.Save(ctx, key, file, mimeType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	upload := &models.FileUpload{
		UserID:       user.ID,
		Path:         key,
		FileType:     fileType,
		OriginalName: header.Filename,
		FileSize:     header.Size,
		MimeType:     mimeType,
		IsActive:     true,
	}
	if err := s.uploadRepo.Create(upload); err != nil {
		// The object is orphaned if the row fails; remove it.
		if cleanupErr := s.storage.Delete(ctx, key); cleanupErr != nil {
			logger.WithError(cleanupErr).Warn("failed to clean up orphaned object", "key", key)
		}
		return nil, apperrors.InternalError(err)
	}

	return s.toResponse(ctx, upload)
}

func (s *UploadServiceImpl) ListOwn(ctx context.Context, user *models.User) ([]dto.UploadResponse, error) {
	if user == nil {
		return nil, apperrors.NewUnauthorizedError("Authentication required")
	}

	uploads, err := s.uploadRepo.ListByUser(user.ID, "")
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.UploadResponse, 0, len(uploads))
	for i := range uploads {
		response, err := s.toResponse(ctx, &uploads[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *response)
	}
	return responses, nil
}

func (s *UploadServiceImpl) Delete(ctx context.Context, user *models.User, uploadID string) error {
	if user == nil {
		return apperrors.NewUnauthorizedError("Authentication required")
	}

	upload, err := s.uploadRepo.FindByID(uploadID)
	if err != nil {
		if errors.Is(err, repositories.ErrUploadNotFound) {
			return apperrors.ErrUploadNotFound
		}
		return apperrors.InternalError(err)
	}
	if upload.UserID != user.ID {
		return apperrors.NewForbiddenError("You do not own this file")
	}

	if err := s.uploadRepo.Deactivate(uploadID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.storage.Delete(ctx, upload.Path); err != nil {
		logger.WithError(err).Warn("failed to delete stored object", "key", upload.Path)
	}
	return nil
}

func (s *UploadServiceImpl) toResponse(ctx context.Context, upload *models.FileUpload) (*dto.UploadResponse, error) {
	url, err := s.storage.PublicURL(ctx, upload.Path)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.UploadResponse{
		ID:           upload.ID,
		URL:          url,
		FileType:     upload.FileType,
		OriginalName: upload.OriginalName,
		FileSize:     upload.FileSize,
		MimeType:     upload.MimeType,
	}, nil
}

func mimeAllowed(mimeType string, allowed []string) bool {
	for _, t := range allowed {
		if strings.EqualFold(t, mimeType) {
			return true
		}
	}
	return false
}

// buildObjectKey produces a collision-free key keeping the original
// extension: <type>/<user>/<random>.<ext>
func buildObjectKey(userID, fileType, filename string) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%s/%s%s", fileType, userID, hex.EncodeToString(buf), ext), nil
}
