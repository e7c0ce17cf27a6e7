package handlers

import (
	"net/http"

	"startuphub_backend/internal/services"
	"startuphub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PositionHandler struct {
	*BaseHandler
	positionService services.PositionService
}

func NewPositionHandler(base *BaseHandler, positionService services.PositionService) *PositionHandler {
	return &PositionHandler{
		BaseHandler:     base,
		positionService: positionService,
	}
}

func (h *PositionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/positions", h.List)
	rg.PUT("/positions/:id", h.Update)
	rg.PATCH("/positions/:id/open", h.Open)
	rg.PATCH("/positions/:id/close", h.Close)
	rg.GET("/startups/:id/positions", h.ListByStartup)
	rg.POST("/startups/:id/positions", h.Create)
}

// List returns open positions across all collaboration startups. Public.
func (h *PositionHandler) List(c *gin.Context) {
	var query dto.ListPositionsQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	response, err := h.positionService.List(&query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *PositionHandler) Create(c *gin.Context) {
	var req dto.CreatePositionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	position, err := h.positionService.Create(h.OptionalUser(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, position)
}

func (h *PositionHandler) Update(c *gin.Context) {
	var req dto.UpdatePositionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	position, err := h.positionService.Update(h.OptionalUser(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, position)
}

// Open reopens a position for applications. Owner only.
func (h *PositionHandler) Open(c *gin.Context) {
	h.setOpen(c, true)
}

// Close stops a position from accepting applications. Owner only.
func (h *PositionHandler) Close(c *gin.Context) {
	h.setOpen(c, false)
}

func (h *PositionHandler) setOpen(c *gin.Context, open bool) {
	position, err := h.positionService.SetOpen(h.OptionalUser(c), c.Param("id"), open)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, position)
}

func (h *PositionHandler) ListByStartup(c *gin.Context) {
	positions, err := h.positionService.ListByStartup(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"positions": positions})
}
