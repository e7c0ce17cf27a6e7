package handlers

import (
	"net/http"

	"startuphub_backend/internal/services"
	"startuphub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type StartupHandler struct {
	*BaseHandler
	startupService services.StartupService
}

func NewStartupHandler(base *BaseHandler, startupService services.StartupService) *StartupHandler {
	return &StartupHandler{
		BaseHandler:    base,
		startupService: startupService,
	}
}

func (h *StartupHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/startups", h.Create)
	rg.GET("/startups/:id", h.GetByID)
	rg.PUT("/startups/:id", h.Update)
	rg.GET("/marketplace", h.ListMarketplace)
	rg.GET("/collaborations", h.ListCollaborations)
	rg.GET("/users/startups", h.ListOwned)
}

// Create godoc
// @Summary Create a startup listing
// @Description Entrepreneur-only, verified email required. The listing gets its type as a default tag when none are given.
// @Tags startups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateStartupRequest true "Startup payload"
// @Success 201 {object} models.Startup
// @Failure 401 {object} apperrors.AppError
// @Failure 403 {object} apperrors.AppError "Wrong role or unverified email"
// @Router /api/startups [post]
func (h *StartupHandler) Create(c *gin.Context) {
	var req dto.CreateStartupRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	startup, err := h.startupService.Create(h.OptionalUser(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, startup)
}

// GetByID returns one startup and counts the view. Public.
func (h *StartupHandler) GetByID(c *gin.Context) {
	startup, err := h.startupService.GetByID(c.Param("id"), true)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, startup)
}

func (h *StartupHandler) Update(c *gin.Context) {
	var req dto.UpdateStartupRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	startup, err := h.startupService.Update(h.OptionalUser(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, startup)
}

// ListMarketplace godoc
// @Summary List active marketplace startups
// @Tags startups
// @Produce json
// @Param category query string false "Category filter"
// @Param search query string false "Title/description search"
// @Param sort_by query string false "newest, price_asc, price_desc or popular"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.StartupListResponse
// @Router /api/marketplace [get]
func (h *StartupHandler) ListMarketplace(c *gin.Context) {
	var query dto.ListStartupsQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	response, err := h.startupService.ListMarketplace(&query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *StartupHandler) ListCollaborations(c *gin.Context) {
	var query dto.ListStartupsQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	response, err := h.startupService.ListCollaborations(&query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *StartupHandler) ListOwned(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	startups, err := h.startupService.ListOwned(user)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"startups": startups})
}
