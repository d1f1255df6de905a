package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"octofit.app/tracker/internal/entity"
)

type Filter struct {
	Difficulty  string
	Category    string
	MaxDuration int
	Page        int
	Limit       int
}

type WorkoutRepository interface {
	Create(ctx context.Context, workout *entity.Workout) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Workout, error)
	FindAll(ctx context.Context, filter Filter) ([]*entity.Workout, int64, error)
	FindSuggestions(ctx context.Context, difficulty, category string, maxDuration, limit int) ([]*entity.Workout, error)
	Update(ctx context.Context, workout *entity.Workout) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type workoutRepository struct {
	db *gorm.DB
}

func NewWorkoutRepository(db *gorm.DB) WorkoutRepository {
	return &workoutRepository{db: db}
}

func (r *workoutRepository) Create(ctx context.Context, workout *entity.Workout) error {
	return r.db.WithContext(ctx).Create(workout).Error
}

func (r *workoutRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Workout, error) {
	var workout entity.Workout
	if err := r.db.WithContext(ctx).First(&workout, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &workout, nil
}

func (r *workoutRepository) FindAll(ctx context.Context, filter Filter) ([]*entity.Workout, int64, error) {
	var workouts []*entity.Workout
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Workout{})
	if filter.Difficulty != "" {
		query = query.Where("difficulty_level = ?", filter.Difficulty)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.MaxDuration > 0 {
		query = query.Where("duration <= ?", filter.MaxDuration)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := query.Order("name ASC").Offset(offset).Limit(filter.Limit).Find(&workouts).Error
	if err != nil {
		return nil, 0, err
	}
	return workouts, total, nil
}

func (r *workoutRepository) FindSuggestions(ctx context.Context, difficulty, category string, maxDuration, limit int) ([]*entity.Workout, error) {
	var workouts []*entity.Workout

	query := r.db.WithContext(ctx).Where("difficulty_level = ?", difficulty)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if maxDuration > 0 {
		query = query.Where("duration <= ?", maxDuration)
	}

	err := query.Order("RANDOM()").Limit(limit).Find(&workouts).Error
	if err != nil {
		return nil, err
	}
	return workouts, nil
}

func (r *workoutRepository) Update(ctx context.Context, workout *entity.Workout) error {
	return r.db.WithContext(ctx).Save(workout).Error
}

func (r *workoutRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Workout{}, "id = ?", id).Error
}
