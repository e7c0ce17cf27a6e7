package handlers

import (
	"net/http"

	"startuphub_backend/internal/services"
	"startuphub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type EngagementHandler struct {
	*BaseHandler
	engagementService services.EngagementService
}

func NewEngagementHandler(base *BaseHandler, engagementService services.EngagementService) *EngagementHandler {
	return &EngagementHandler{
		BaseHandler:       base,
		engagementService: engagementService,
	}
}

func (h *EngagementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/favorites", h.ListFavorites)
	rg.POST("/startups/:id/favorite", h.AddFavorite)
	rg.DELETE("/startups/:id/favorite", h.RemoveFavorite)

	rg.GET("/users/interests", h.ListOwnInterests)
	rg.POST("/startups/:id/interest", h.ExpressInterest)
	rg.GET("/startups/:id/interests", h.ListStartupInterests)
}

func (h *EngagementHandler) ListFavorites(c *gin.Context) {
	favorites, err := h.engagementService.ListFavorites(h.OptionalUser(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

func (h *EngagementHandler) AddFavorite(c *gin.Context) {
	if err := h.engagementService.AddFavorite(h.OptionalUser(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Added to favorites"})
}

func (h *EngagementHandler) RemoveFavorite(c *gin.Context) {
	if err := h.engagementService.RemoveFavorite(h.OptionalUser(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Removed from favorites"})
}

func (h *EngagementHandler) ListOwnInterests(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	interests, err := h.engagementService.ListOwnInterests(user)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"interests": interests})
}

// ExpressInterest godoc
// @Summary Express interest in a startup
// @Description Verified email required. Notifies the owner and opens a conversation seeded with the interest message.
// @Tags engagement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Startup ID"
// @Param body body dto.ExpressInterestRequest false "Optional message"
// @Success 201 {object} models.Interest
// @Failure 403 {object} apperrors.AppError "Unverified email"
// @Failure 409 {object} apperrors.AppError "Interest already expressed"
// @Router /api/startups/{id}/interest [post]
func (h *EngagementHandler) ExpressInterest(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}
	var req dto.ExpressInterestRequest
	// The message body is optional.
	if c.Request.ContentLength > 0 && !h.BindAndValidateJSON(c, &req) {
		return
	}

	interest, err := h.engagementService.ExpressInterest(user, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, interest)
}

func (h *EngagementHandler) ListStartupInterests(c *gin.Context) {
	interests, err := h.engagementService.ListStartupInterests(h.OptionalUser(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"interests": interests})
}
