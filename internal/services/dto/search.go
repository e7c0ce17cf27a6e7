package dto

import "startuphub_backend/internal/models"

type SearchQuery struct {
	Query string `form:"q" binding:"required,min=1"`
	Type  string `form:"type" binding:"omitempty,oneof=startups positions users all"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=50"`
}

type SearchResponse struct {
	Startups  []models.Startup  `json:"startups,omitempty"`
	Positions []models.Position `json:"positions,omitempty"`
	Users     []UserResponse    `json:"users,omitempty"`
}

// PlatformStats is the public counters payload.
type PlatformStats struct {
	TotalUsers      int64 `json:"total_users"`
	VerifiedUsers   int64 `json:"verified_users"`
	TotalStartups   int64 `json:"total_startups"`
	Marketplace     int64 `json:"marketplace_startups"`
	Collaborations  int64 `json:"collaboration_startups"`
	ActivePositions int64 `json:"active_positions"`
}
