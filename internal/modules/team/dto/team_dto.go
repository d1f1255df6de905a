package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description"`
}

type UpdateTeamRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description"`
}

type AddMemberRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

type TeamMember struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	ProfilePicture *string   `json:"profile_picture,omitempty"`
	FitnessLevel   string    `json:"fitness_level"`
	TotalPoints    int       `json:"total_points"`
}

type TeamResponse struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	CreatedByID uuid.UUID    `json:"created_by_id"`
	TotalPoints int          `json:"total_points"`
	Members     []TeamMember `json:"members,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

type TeamFilter struct {
	Search string `form:"search"`
	Page   int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit  int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

type TeamStatsResponse struct {
	MembersCount    int64   `json:"members_count"`
	TotalPoints     int     `json:"total_points"`
	TotalActivities int64   `json:"total_activities"`
	TotalDuration   int64   `json:"total_duration"`
	TotalDistance   float64 `json:"total_distance"`
}

type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	Limit       int   `json:"limit"`
}

type PaginatedTeamResponse struct {
	Data []TeamResponse `json:"data"`
	Meta PaginationMeta `json:"meta"`
}
