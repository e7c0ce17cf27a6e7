package handlers

import (
	"net/http"

	"startuphub_backend/internal/services"
	"startuphub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/collaborations/:id/apply", h.Apply)
	rg.GET("/users/applications", h.ListOwn)
	rg.GET("/startups/:id/applications", h.ListForStartup)
	rg.PATCH("/applications/:id/approve", h.Approve)
	rg.PATCH("/applications/:id/decline", h.Decline)
}

// Apply godoc
// @Summary Apply for a position on a collaboration startup
// @Description Verified email required. One application per position per user. The startup owner is notified.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Startup ID"
// @Param body body dto.ApplyRequest true "Application payload"
// @Success 201 {object} models.Application
// @Failure 403 {object} apperrors.AppError "Unverified email"
// @Failure 409 {object} apperrors.AppError "Already applied or position closed"
// @Router /api/collaborations/{id}/apply [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}
	var req dto.ApplyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	application, err := h.applicationService.Apply(user, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, application)
}

func (h *ApplicationHandler) ListOwn(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	applications, err := h.applicationService.ListOwn(user)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": applications})
}

func (h *ApplicationHandler) ListForStartup(c *gin.Context) {
	applications, err := h.applicationService.ListForStartup(h.OptionalUser(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": applications})
}

// Approve accepts a pending application. Owner only; applicant is notified.
func (h *ApplicationHandler) Approve(c *gin.Context) {
	h.decide(c, true)
}

// Decline rejects a pending application. Owner only; applicant is notified.
func (h *ApplicationHandler) Decline(c *gin.Context) {
	h.decide(c, false)
}

func (h *ApplicationHandler) decide(c *gin.Context, approve bool) {
	application, err := h.applicationService.Decide(h.OptionalUser(c), c.Param("id"), approve)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, application)
}
