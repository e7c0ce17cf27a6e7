package handlers

import (
	"net/http"

	"startuphub_backend/internal/services"
	"startuphub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// UserHandler serves profile, search and platform-stats endpoints.
type UserHandler struct {
	*BaseHandler
	searchService services.SearchService
}

func NewUserHandler(base *BaseHandler, searchService services.SearchService) *UserHandler {
	return &UserHandler{
		BaseHandler:   base,
		searchService: searchService,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/profile", h.Profile)
	rg.GET("/search", h.Search)
	rg.GET("/stats", h.Stats)
}

func (h *UserHandler) Profile(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Search godoc
// @Summary Search startups, positions and users
// @Tags search
// @Produce json
// @Param q query string true "Search term"
// @Param type query string false "startups, positions, users or all"
// @Param limit query int false "Max results per entity"
// @Success 200 {object} dto.SearchResponse
// @Router /api/search [get]
func (h *UserHandler) Search(c *gin.Context) {
	var query dto.SearchQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	response, err := h.searchService.Search(&query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Stats returns the public platform counters.
func (h *UserHandler) Stats(c *gin.Context) {
	stats, err := h.searchService.PlatformStats()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
