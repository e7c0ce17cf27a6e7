package handlers

import (
	"net/http"

	"startuphub_backend/internal/services"
	"startuphub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	*BaseHandler
	uploadService services.UploadService
}

func NewUploadHandler(base *BaseHandler, uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   base,
		uploadService: uploadService,
	}
}

func (h *UploadHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/uploads/resume", h.uploadAs("resume"))
	rg.POST("/uploads/startup-image", h.uploadAs("startup_image"))
	rg.POST("/uploads/profile-picture", h.uploadAs("profile_picture"))
	rg.GET("/uploads", h.List)
	rg.DELETE("/uploads/:id", h.Delete)
}

func (h *UploadHandler) uploadAs(fileType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := h.RequireUser(c)
		if !ok {
			return
		}

		header, err := c.FormFile("file")
		if err != nil {
			apperrors.HandleError(c, apperrors.NewBadRequestError("Missing file field"))
			return
		}

		response, err := h.uploadService.Upload(c.Request.Context(), user, fileType, header)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}

		c.JSON(http.StatusCreated, response)
	}
}

func (h *UploadHandler) List(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	uploads, err := h.uploadService.ListOwn(c.Request.Context(), user)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"uploads": uploads})
}

func (h *UploadHandler) Delete(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	if err := h.uploadService.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted"})
}
