package dto

import "startuphub_backend/internal/models"

type CreatePositionRequest struct {
	Title        string `json:"title" binding:"required,min=3,max=200"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
}

type UpdatePositionRequest struct {
	Title        string `json:"title" binding:"omitempty,min=3,max=200"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
}

type ListPositionsQuery struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type PositionListResponse struct {
	Positions []models.Position `json:"positions"`
	Total     int64             `json:"total"`
	Page      int               `json:"page"`
	PageSize  int               `json:"page_size"`
}
