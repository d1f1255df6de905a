package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"octofit.app/tracker/internal/entity"
)

// EntityPoints is one row of a ranking pass: a user or team together with its
// windowed points sum. Entities without activities in the window appear with
// zero points.
type EntityPoints struct {
	ID     uuid.UUID
	Name   string
	Points int
}

type LeaderboardRepository interface {
	UserPoints(ctx context.Context, since *time.Time) ([]EntityPoints, error)
	TeamPoints(ctx context.Context, since *time.Time) ([]EntityPoints, error)
	UpsertUserEntry(ctx context.Context, userID uuid.UUID, period string, rank, points int) error
	UpsertTeamEntry(ctx context.Context, teamID uuid.UUID, period string, rank, points int) error
	DeleteUserEntriesNotIn(ctx context.Context, period string, keep []uuid.UUID) error
	DeleteTeamEntriesNotIn(ctx context.Context, period string, keep []uuid.UUID) error
	ListEntries(ctx context.Context, period, entityType string, limit int) ([]*entity.LeaderboardEntry, error)
	UpdateTeamTotalPoints(ctx context.Context, teamID uuid.UUID, points int) error
}

type leaderboardRepository struct {
	db *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

// UserPoints sums points_earned per user over activities with date >= since
// (all activities when since is nil). The window condition lives in the join so
// users without matching activities still come back with zero.
func (r *leaderboardRepository) UserPoints(ctx context.Context, since *time.Time) ([]EntityPoints, error) {
	query := r.db.WithContext(ctx).Model(&entity.User{}).
		Select("users.id AS id, users.username AS name, COALESCE(SUM(a.points_earned), 0) AS points")

	if since != nil {
		query = query.Joins("LEFT JOIN activities a ON a.user_id = users.id AND a.date >= ?", *since)
	} else {
		query = query.Joins("LEFT JOIN activities a ON a.user_id = users.id")
	}

	var rows []EntityPoints
	if err := query.Group("users.id, users.username").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *leaderboardRepository) TeamPoints(ctx context.Context, since *time.Time) ([]EntityPoints, error) {
	query := r.db.WithContext(ctx).Model(&entity.Team{}).
		Select("teams.id AS id, teams.name AS name, COALESCE(SUM(a.points_earned), 0) AS points").
		Joins("LEFT JOIN team_members tm ON tm.team_id = teams.id")

	if since != nil {
		query = query.Joins("LEFT JOIN activities a ON a.user_id = tm.user_id AND a.date >= ?", *since)
	} else {
		query = query.Joins("LEFT JOIN activities a ON a.user_id = tm.user_id")
	}

	var rows []EntityPoints
	if err := query.Group("teams.id, teams.name").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *leaderboardRepository) UpsertUserEntry(ctx context.Context, userID uuid.UUID, period string, rank, points int) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "period"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"rank":       rank,
			"points":     points,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&entity.LeaderboardEntry{
		UserID: &userID,
		Period: period,
		Rank:   rank,
		Points: points,
	}).Error
}

func (r *leaderboardRepository) UpsertTeamEntry(ctx context.Context, teamID uuid.UUID, period string, rank, points int) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "team_id"}, {Name: "period"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"rank":       rank,
			"points":     points,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&entity.LeaderboardEntry{
		TeamID: &teamID,
		Period: period,
		Rank:   rank,
		Points: points,
	}).Error
}

func (r *leaderboardRepository) DeleteUserEntriesNotIn(ctx context.Context, period string, keep []uuid.UUID) error {
	query := r.db.WithContext(ctx).
		Where("period = ? AND user_id IS NOT NULL", period)
	if len(keep) > 0 {
		query = query.Where("user_id NOT IN ?", keep)
	}
	return query.Delete(&entity.LeaderboardEntry{}).Error
}

func (r *leaderboardRepository) DeleteTeamEntriesNotIn(ctx context.Context, period string, keep []uuid.UUID) error {
	query := r.db.WithContext(ctx).
		Where("period = ? AND team_id IS NOT NULL", period)
	if len(keep) > 0 {
		query = query.Where("team_id NOT IN ?", keep)
	}
	return query.Delete(&entity.LeaderboardEntry{}).Error
}

func (r *leaderboardRepository) ListEntries(ctx context.Context, period, entityType string, limit int) ([]*entity.LeaderboardEntry, error) {
	query := r.db.WithContext(ctx).Where("period = ?", period)

	switch entityType {
	case "team":
		query = query.Preload("Team").Where("team_id IS NOT NULL")
	default:
		query = query.Preload("User").Where("user_id IS NOT NULL")
	}

	var entries []*entity.LeaderboardEntry
	if err := query.Order("rank ASC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *leaderboardRepository) UpdateTeamTotalPoints(ctx context.Context, teamID uuid.UUID, points int) error {
	return r.db.WithContext(ctx).Model(&entity.Team{}).
		Where("id = ?", teamID).
		Update("total_points", points).Error
}
