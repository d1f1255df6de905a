package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"octofit.app/tracker/internal/entity"
)

// ActivitySummary aggregates one user's (or team's) activity log.
type ActivitySummary struct {
	TotalActivities int64
	TotalDuration   int64
	TotalDistance   float64
	TotalCalories   int64
}

type Filter struct {
	UserID       *uuid.UUID
	ActivityType string
	StartDate    *time.Time
	EndDate      *time.Time
	Page         int
	Limit        int
}

type ActivityRepository interface {
	Create(ctx context.Context, activity *entity.Activity) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Activity, error)
	FindAll(ctx context.Context, filter Filter) ([]*entity.Activity, int64, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Activity, error)
	Update(ctx context.Context, activity *entity.Activity) error
	Delete(ctx context.Context, id uuid.UUID) error
	RefreshUserTotalPoints(ctx context.Context, userID uuid.UUID) error
	SummaryByUser(ctx context.Context, userID uuid.UUID) (*ActivitySummary, error)
	SummaryByTeam(ctx context.Context, teamID uuid.UUID) (*ActivitySummary, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *entity.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Activity, error) {
	var activity entity.Activity
	if err := r.db.WithContext(ctx).Preload("User").First(&activity, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *activityRepository) FindAll(ctx context.Context, filter Filter) ([]*entity.Activity, int64, error) {
	var activities []*entity.Activity
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Activity{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.ActivityType != "" {
		query = query.Where("activity_type = ?", filter.ActivityType)
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := query.Preload("User").Order("date DESC").Offset(offset).Limit(filter.Limit).Find(&activities).Error
	if err != nil {
		return nil, 0, err
	}
	return activities, total, nil
}

func (r *activityRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Activity, error) {
	var activities []*entity.Activity
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *activityRepository) Update(ctx context.Context, activity *entity.Activity) error {
	return r.db.WithContext(ctx).Save(activity).Error
}

func (r *activityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Activity{}, "id = ?", id).Error
}

// RefreshUserTotalPoints recomputes the derived total in a single statement so
// concurrent activity writes cannot interleave a stale read-modify-write.
func (r *activityRepository) RefreshUserTotalPoints(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", userID).
		Update("total_points", gorm.Expr(
			"(SELECT COALESCE(SUM(points_earned), 0) FROM activities WHERE user_id = ?)", userID,
		)).Error
}

func (r *activityRepository) SummaryByUser(ctx context.Context, userID uuid.UUID) (*ActivitySummary, error) {
	var summary ActivitySummary
	err := r.db.WithContext(ctx).Model(&entity.Activity{}).
		Select("COUNT(*) AS total_activities, COALESCE(SUM(duration), 0) AS total_duration, COALESCE(SUM(distance), 0) AS total_distance, COALESCE(SUM(calories_burned), 0) AS total_calories").
		Where("user_id = ?", userID).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *activityRepository) SummaryByTeam(ctx context.Context, teamID uuid.UUID) (*ActivitySummary, error) {
	var summary ActivitySummary
	err := r.db.WithContext(ctx).Model(&entity.Activity{}).
		Select("COUNT(*) AS total_activities, COALESCE(SUM(duration), 0) AS total_duration, COALESCE(SUM(distance), 0) AS total_distance, COALESCE(SUM(calories_burned), 0) AS total_calories").
		Joins("JOIN team_members tm ON tm.user_id = activities.user_id").
		Where("tm.team_id = ?", teamID).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
