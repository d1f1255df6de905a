package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"octofit.app/tracker/internal/entity"
	"octofit.app/tracker/internal/modules/activity/dto"
	"octofit.app/tracker/internal/modules/activity/repository"
	"octofit.app/tracker/internal/modules/scoring"
	userRepo "octofit.app/tracker/internal/modules/user/repository"
	"octofit.app/tracker/pkg/apperror"
)

type ActivityService interface {
	CreateActivity(ctx context.Context, actorID uuid.UUID, req dto.CreateActivityRequest) (*dto.ActivityResponse, error)
	GetActivity(ctx context.Context, id uuid.UUID) (*dto.ActivityResponse, error)
	GetAllActivities(ctx context.Context, filter dto.ActivityFilter) (*dto.PaginatedActivityResponse, error)
	UpdateActivity(ctx context.Context, id uuid.UUID, req dto.UpdateActivityRequest) (*dto.ActivityResponse, error)
	DeleteActivity(ctx context.Context, id uuid.UUID) error
}

type activityService struct {
	repo     repository.ActivityRepository
	userRepo userRepo.UserRepository
}

func NewActivityService(repo repository.ActivityRepository, userRepo userRepo.UserRepository) ActivityService {
	return &activityService{repo: repo, userRepo: userRepo}
}

// CreateActivity logs a session for req.UserID (the acting user when absent).
// Points are computed once here when the caller did not supply them; afterwards
// the owner's derived total is refreshed.
func (s *activityService) CreateActivity(ctx context.Context, actorID uuid.UUID, req dto.CreateActivityRequest) (*dto.ActivityResponse, error) {
	ownerID := actorID
	if req.UserID != "" {
		parsed, err := uuid.Parse(req.UserID)
		if err != nil {
			return nil, apperror.ErrBadRequest
		}
		ownerID = parsed
	}

	owner, err := s.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	points := req.PointsEarned
	if points == 0 {
		points = scoring.Points(req.Duration, req.ActivityType)
	}

	activity := &entity.Activity{
		UserID:       owner.ID,
		ActivityType: req.ActivityType,
		Duration:     req.Duration,
		Distance:     req.Distance,
		Calories:     req.Calories,
		PointsEarned: points,
		Notes:        req.Notes,
		Date:         req.Date,
	}

	if err := s.repo.Create(ctx, activity); err != nil {
		return nil, err
	}

	if err := s.repo.RefreshUserTotalPoints(ctx, owner.ID); err != nil {
		return nil, err
	}

	activity.User = owner
	resp := toResponse(activity)
	return &resp, nil
}

func (s *activityService) GetActivity(ctx context.Context, id uuid.UUID) (*dto.ActivityResponse, error) {
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	resp := toResponse(activity)
	return &resp, nil
}

func (s *activityService) GetAllActivities(ctx context.Context, filter dto.ActivityFilter) (*dto.PaginatedActivityResponse, error) {
	repoFilter, err := toRepoFilter(filter)
	if err != nil {
		return nil, err
	}

	activities, total, err := s.repo.FindAll(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		responses = append(responses, toResponse(a))
	}

	return &dto.PaginatedActivityResponse{
		Data: responses,
		Meta: dto.PaginationMeta{
			CurrentPage: repoFilter.Page,
			TotalPages:  int(math.Ceil(float64(total) / float64(repoFilter.Limit))),
			TotalItems:  total,
			Limit:       repoFilter.Limit,
		},
	}, nil
}

// UpdateActivity edits a logged session. The stored score is kept untouched
// unless the caller explicitly clears it (points_earned = 0), in which case it
// is recomputed from the edited duration and type.
func (s *activityService) UpdateActivity(ctx context.Context, id uuid.UUID, req dto.UpdateActivityRequest) (*dto.ActivityResponse, error) {
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if req.ActivityType != nil {
		activity.ActivityType = *req.ActivityType
	}
	if req.Duration != nil {
		activity.Duration = *req.Duration
	}
	if req.Distance != nil {
		activity.Distance = req.Distance
	}
	if req.Calories != nil {
		activity.Calories = *req.Calories
	}
	if req.Notes != nil {
		activity.Notes = *req.Notes
	}
	if req.Date != nil {
		activity.Date = *req.Date
	}
	if req.PointsEarned != nil {
		if *req.PointsEarned == 0 {
			activity.PointsEarned = scoring.Points(activity.Duration, activity.ActivityType)
		} else {
			activity.PointsEarned = *req.PointsEarned
		}
	}

	if err := s.repo.Update(ctx, activity); err != nil {
		return nil, err
	}

	if err := s.repo.RefreshUserTotalPoints(ctx, activity.UserID); err != nil {
		return nil, err
	}

	resp := toResponse(activity)
	return &resp, nil
}

func (s *activityService) DeleteActivity(ctx context.Context, id uuid.UUID) error {
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	return s.repo.RefreshUserTotalPoints(ctx, activity.UserID)
}

func toRepoFilter(filter dto.ActivityFilter) (repository.Filter, error) {
	repoFilter := repository.Filter{
		ActivityType: filter.ActivityType,
		Page:         filter.Page,
		Limit:        filter.Limit,
	}
	if repoFilter.Page < 1 {
		repoFilter.Page = 1
	}
	if repoFilter.Limit < 1 {
		repoFilter.Limit = 20
	}

	if filter.UserID != "" {
		id, err := uuid.Parse(filter.UserID)
		if err != nil {
			return repository.Filter{}, apperror.ErrBadRequest
		}
		repoFilter.UserID = &id
	}
	if filter.StartDate != "" {
		t, err := time.Parse(time.RFC3339, filter.StartDate)
		if err != nil {
			return repository.Filter{}, apperror.ErrBadRequest
		}
		repoFilter.StartDate = &t
	}
	if filter.EndDate != "" {
		t, err := time.Parse(time.RFC3339, filter.EndDate)
		if err != nil {
			return repository.Filter{}, apperror.ErrBadRequest
		}
		repoFilter.EndDate = &t
	}
	return repoFilter, nil
}

func toResponse(a *entity.Activity) dto.ActivityResponse {
	resp := dto.ActivityResponse{
		ID:           a.ID,
		UserID:       a.UserID,
		ActivityType: a.ActivityType,
		Duration:     a.Duration,
		Distance:     a.Distance,
		Calories:     a.Calories,
		PointsEarned: a.PointsEarned,
		Notes:        a.Notes,
		Date:         a.Date,
		CreatedAt:    a.CreatedAt,
	}
	if a.User != nil {
		resp.Username = a.User.Username
	}
	return resp
}
