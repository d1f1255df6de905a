package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"octofit.app/tracker/internal/entity"
)

type TeamRepository interface {
	Create(ctx context.Context, team *entity.Team) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Team, error)
	FindByName(ctx context.Context, name string) (*entity.Team, error)
	FindAll(ctx context.Context, search string, page, limit int) ([]*entity.Team, int64, error)
	Update(ctx context.Context, team *entity.Team) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddMember(ctx context.Context, team *entity.Team, user *entity.User) error
	RemoveMember(ctx context.Context, team *entity.Team, user *entity.User) error
	IsMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
	CountMembers(ctx context.Context, teamID uuid.UUID) (int64, error)
	SumMemberPoints(ctx context.Context, teamID uuid.UUID) (int, error)
}

type teamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(ctx context.Context, team *entity.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *teamRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Team, error) {
	var team entity.Team
	if err := r.db.WithContext(ctx).Preload("Members").First(&team, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) FindByName(ctx context.Context, name string) (*entity.Team, error) {
	var team entity.Team
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) FindAll(ctx context.Context, search string, page, limit int) ([]*entity.Team, int64, error) {
	var teams []*entity.Team
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Team{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Preload("Members").Order("total_points DESC").Offset(offset).Limit(limit).Find(&teams).Error
	if err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

func (r *teamRepository) Update(ctx context.Context, team *entity.Team) error {
	return r.db.WithContext(ctx).Save(team).Error
}

func (r *teamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Team{}, "id = ?", id).Error
}

func (r *teamRepository) AddMember(ctx context.Context, team *entity.Team, user *entity.User) error {
	return r.db.WithContext(ctx).Model(team).Association("Members").Append(user)
}

func (r *teamRepository) RemoveMember(ctx context.Context, team *entity.Team, user *entity.User) error {
	return r.db.WithContext(ctx).Model(team).Association("Members").Delete(user)
}

func (r *teamRepository) IsMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("team_members").
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *teamRepository) CountMembers(ctx context.Context, teamID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("team_members").
		Where("team_id = ?", teamID).
		Count(&count).Error
	return count, err
}

func (r *teamRepository) SumMemberPoints(ctx context.Context, teamID uuid.UUID) (int, error) {
	var points int
	err := r.db.WithContext(ctx).Model(&entity.Activity{}).
		Select("COALESCE(SUM(points_earned), 0)").
		Joins("JOIN team_members tm ON tm.user_id = activities.user_id").
		Where("tm.team_id = ?", teamID).
		Scan(&points).Error
	return points, err
}
