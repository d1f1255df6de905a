package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Username     string `json:"username" binding:"required,min=3,max=50"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	FirstName    string `json:"first_name" binding:"max=50"`
	LastName     string `json:"last_name" binding:"max=50"`
	FitnessLevel string `json:"fitness_level" binding:"omitempty,oneof=beginner intermediate advanced"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	ProfilePicture *string   `json:"profile_picture,omitempty"`
	Bio            string    `json:"bio"`
	FitnessLevel   string    `json:"fitness_level"`
	TotalPoints    int       `json:"total_points"`
	CreatedAt      time.Time `json:"created_at"`
}

type UpdateUserRequest struct {
	FirstName    *string `json:"first_name" binding:"omitempty,max=50"`
	LastName     *string `json:"last_name" binding:"omitempty,max=50"`
	Bio          *string `json:"bio"`
	FitnessLevel *string `json:"fitness_level" binding:"omitempty,oneof=beginner intermediate advanced"`
	Password     *string `json:"password" binding:"omitempty,min=8"`
}

type UserFilter struct {
	Search string `form:"search"`
	Page   int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit  int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

type UserStatsResponse struct {
	TotalActivities int64   `json:"total_activities"`
	TotalPoints     int     `json:"total_points"`
	TotalDuration   int64   `json:"total_duration"`
	TotalDistance   float64 `json:"total_distance"`
	TotalCalories   int64   `json:"total_calories"`
	TeamsCount      int64   `json:"teams_count"`
}

type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	Limit       int   `json:"limit"`
}

type PaginatedUserResponse struct {
	Data []UserResponse `json:"data"`
	Meta PaginationMeta `json:"meta"`
}
