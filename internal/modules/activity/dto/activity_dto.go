package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateActivityRequest struct {
	UserID       string   `json:"user_id" binding:"omitempty,uuid"`
	ActivityType string   `json:"activity_type" binding:"required,oneof=running cycling swimming weightlifting yoga walking other"`
	Duration     int      `json:"duration" binding:"required,min=1"`
	Distance     *float64 `json:"distance" binding:"omitempty,min=0"`
	Calories     int      `json:"calories_burned" binding:"omitempty,min=0"`
	// PointsEarned overrides the computed score when non-zero.
	PointsEarned int       `json:"points_earned" binding:"omitempty,min=0"`
	Notes        string    `json:"notes"`
	Date         time.Time `json:"date" binding:"required"`
}

type UpdateActivityRequest struct {
	ActivityType *string  `json:"activity_type" binding:"omitempty,oneof=running cycling swimming weightlifting yoga walking other"`
	Duration     *int     `json:"duration" binding:"omitempty,min=1"`
	Distance     *float64 `json:"distance" binding:"omitempty,min=0"`
	Calories     *int     `json:"calories_burned" binding:"omitempty,min=0"`
	// Setting PointsEarned to zero clears the stored score and recomputes it;
	// leaving it out keeps the stored value.
	PointsEarned *int       `json:"points_earned" binding:"omitempty,min=0"`
	Notes        *string    `json:"notes"`
	Date         *time.Time `json:"date"`
}

type ActivityFilter struct {
	UserID       string `form:"user_id" binding:"omitempty,uuid"`
	ActivityType string `form:"activity_type" binding:"omitempty,oneof=running cycling swimming weightlifting yoga walking other"`
	StartDate    string `form:"start_date"`
	EndDate      string `form:"end_date"`
	Page         int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit        int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

type ActivityResponse struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Username     string    `json:"username,omitempty"`
	ActivityType string    `json:"activity_type"`
	Duration     int       `json:"duration"`
	Distance     *float64  `json:"distance,omitempty"`
	Calories     int       `json:"calories_burned"`
	PointsEarned int       `json:"points_earned"`
	Notes        string    `json:"notes"`
	Date         time.Time `json:"date"`
	CreatedAt    time.Time `json:"created_at"`
}

type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	Limit       int   `json:"limit"`
}

type PaginatedActivityResponse struct {
	Data []ActivityResponse `json:"data"`
	Meta PaginationMeta     `json:"meta"`
}
