package dto

import (
	"time"

	"github.com/google/uuid"

	"octofit.app/tracker/internal/entity"
)

type ExerciseInput struct {
	Name            string `json:"name" binding:"required"`
	Sets            int    `json:"sets" binding:"omitempty,min=1"`
	Reps            int    `json:"reps" binding:"omitempty,min=1"`
	DurationSeconds int    `json:"duration_seconds" binding:"omitempty,min=1"`
}

type CreateWorkoutRequest struct {
	Name            string          `json:"name" binding:"required,min=2,max=200"`
	Description     string          `json:"description"`
	DifficultyLevel string          `json:"difficulty_level" binding:"required,oneof=beginner intermediate advanced"`
	Category        string          `json:"category" binding:"required,oneof=strength cardio flexibility balance hiit"`
	Duration        int             `json:"duration" binding:"required,min=1"`
	Exercises       []ExerciseInput `json:"exercises" binding:"omitempty,dive"`
	EquipmentNeeded []string        `json:"equipment_needed"`
	TargetMuscles   []string        `json:"target_muscles"`
}

type UpdateWorkoutRequest struct {
	Name            *string         `json:"name" binding:"omitempty,min=2,max=200"`
	Description     *string         `json:"description"`
	DifficultyLevel *string         `json:"difficulty_level" binding:"omitempty,oneof=beginner intermediate advanced"`
	Category        *string         `json:"category" binding:"omitempty,oneof=strength cardio flexibility balance hiit"`
	Duration        *int            `json:"duration" binding:"omitempty,min=1"`
	Exercises       []ExerciseInput `json:"exercises" binding:"omitempty,dive"`
	EquipmentNeeded []string        `json:"equipment_needed"`
	TargetMuscles   []string        `json:"target_muscles"`
}

type WorkoutFilter struct {
	Difficulty  string `form:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Category    string `form:"category" binding:"omitempty,oneof=strength cardio flexibility balance hiit"`
	MaxDuration int    `form:"max_duration" binding:"omitempty,min=1"`
	Page        int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit       int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

type SuggestionFilter struct {
	FitnessLevel string `form:"fitness_level" binding:"omitempty,oneof=beginner intermediate advanced"`
	Category     string `form:"category" binding:"omitempty,oneof=strength cardio flexibility balance hiit"`
	MaxDuration  int    `form:"max_duration" binding:"omitempty,min=1"`
}

type SearchFilter struct {
	Query      string `form:"q" binding:"required"`
	Difficulty string `form:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Category   string `form:"category" binding:"omitempty,oneof=strength cardio flexibility balance hiit"`
	Limit      int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

type WorkoutResponse struct {
	ID              uuid.UUID           `json:"id"`
	Name            string              `json:"name"`
	Description     string              `json:"description"`
	DifficultyLevel string              `json:"difficulty_level"`
	Category        string              `json:"category"`
	Duration        int                 `json:"duration"`
	Exercises       entity.ExerciseList `json:"exercises"`
	EquipmentNeeded entity.StringList   `json:"equipment_needed"`
	TargetMuscles   entity.StringList   `json:"target_muscles"`
	CreatedAt       time.Time           `json:"created_at"`
}

type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	Limit       int   `json:"limit"`
}

type PaginatedWorkoutResponse struct {
	Data []WorkoutResponse `json:"data"`
	Meta PaginationMeta    `json:"meta"`
}
