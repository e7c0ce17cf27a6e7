package dto

import "startuphub_backend/internal/models"

type CreateStartupRequest struct {
	Title       string             `json:"title" binding:"required,min=3,max=200"`
	Description string             `json:"description" binding:"required"`
	Type        models.StartupType `json:"type" binding:"required,oneof=marketplace collaboration"`
	Category    string             `json:"category"`
	Field       string             `json:"field"`
	Phase       string             `json:"phase"`
	TeamSize    string             `json:"team_size"`
	EarnThrough string             `json:"earn_through"`
	AskingPrice int64              `json:"asking_price" binding:"min=0"`
	Tags        []string           `json:"tags"`
}

type UpdateStartupRequest struct {
	Title       string                `json:"title" binding:"omitempty,min=3,max=200"`
	Description string                `json:"description"`
	Category    string                `json:"category"`
	Field       string                `json:"field"`
	Phase       string                `json:"phase"`
	TeamSize    string                `json:"team_size"`
	EarnThrough string                `json:"earn_through"`
	AskingPrice *int64                `json:"asking_price" binding:"omitempty,min=0"`
	Status      *models.StartupStatus `json:"status" binding:"omitempty,oneof=active sold archived"`
	Tags        []string              `json:"tags"`
}

// ListStartupsQuery is bound from query parameters on listing endpoints.
type ListStartupsQuery struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=newest price_asc price_desc popular"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type StartupListResponse struct {
	Startups []models.Startup `json:"startups"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}
