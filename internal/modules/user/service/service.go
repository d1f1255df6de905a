package service

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"octofit.app/tracker/internal/entity"
	activityrepo "octofit.app/tracker/internal/modules/activity/repository"
	"octofit.app/tracker/internal/modules/user/dto"
	"octofit.app/tracker/internal/modules/user/repository"
	"octofit.app/tracker/pkg/apperror"
	"octofit.app/tracker/pkg/storage"
)

type UserService interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	GetAllUsers(ctx context.Context, filter dto.UserFilter) (*dto.PaginatedUserResponse, error)
	UpdateUser(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error
	GetUserActivities(ctx context.Context, id uuid.UUID) ([]*entity.Activity, error)
	GetUserTeams(ctx context.Context, id uuid.UUID) ([]*entity.Team, error)
	GetUserStats(ctx context.Context, id uuid.UUID) (*dto.UserStatsResponse, error)
	UploadAvatar(ctx context.Context, actorID uuid.UUID, file multipart.File, header *multipart.FileHeader) (*dto.UserResponse, error)
}

type userService struct {
	repo         repository.UserRepository
	activityRepo activityrepo.ActivityRepository
	imageStorage storage.ImageStorage
}

func NewUserService(repo repository.UserRepository, activityRepo activityrepo.ActivityRepository, imageStorage storage.ImageStorage) UserService {
	return &userService{
		repo:         repo,
		activityRepo: activityRepo,
		imageStorage: imageStorage,
	}
}

func (s *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) GetAllUsers(ctx context.Context, filter dto.UserFilter) (*dto.PaginatedUserResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	users, total, err := s.repo.FindAll(ctx, filter.Search, filter.Page, filter.Limit)
	if err != nil {
		return nil, err
	}

	data := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		data = append(data, toUserResponse(user))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &dto.PaginatedUserResponse{
		Data: data,
		Meta: dto.PaginationMeta{
			CurrentPage: filter.Page,
			TotalPages:  totalPages,
			TotalItems:  total,
			Limit:       filter.Limit,
		},
	}, nil
}

func (s *userService) UpdateUser(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if actorID != id && !isAdmin {
		return nil, apperror.ErrForbidden
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.FitnessLevel != nil {
		user.FitnessLevel = *req.FitnessLevel
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) DeleteUser(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	if actorID != id && !isAdmin {
		return apperror.ErrForbidden
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	return s.repo.Delete(ctx, id)
}

func (s *userService) GetUserActivities(ctx context.Context, id uuid.UUID) ([]*entity.Activity, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return s.activityRepo.FindByUser(ctx, id)
}

func (s *userService) GetUserTeams(ctx context.Context, id uuid.UUID) ([]*entity.Team, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return s.repo.TeamsOf(ctx, id)
}

func (s *userService) GetUserStats(ctx context.Context, id uuid.UUID) (*dto.UserStatsResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	summary, err := s.activityRepo.SummaryByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	teams, err := s.repo.CountTeams(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.UserStatsResponse{
		TotalActivities: summary.TotalActivities,
		TotalPoints:     user.TotalPoints,
		TotalDuration:   summary.TotalDuration,
		TotalDistance:   summary.TotalDistance,
		TotalCalories:   summary.TotalCalories,
		TeamsCount:      teams,
	}, nil
}

func (s *userService) UploadAvatar(ctx context.Context, actorID uuid.UUID, file multipart.File, header *multipart.FileHeader) (*dto.UserResponse, error) {
	if s.imageStorage == nil {
		return nil, apperror.New(http.StatusServiceUnavailable, "image storage is not configured", apperror.ErrInternal)
	}

	user, err := s.repo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	url, err := s.imageStorage.UploadImage(ctx, file, "avatars", header.Filename)
	if err != nil {
		return nil, err
	}

	// Drop the previous avatar once the replacement is stored.
	if user.ProfilePicture != nil {
		if err := s.imageStorage.DeleteImage(ctx, *user.ProfilePicture); err != nil {
			return nil, err
		}
	}

	user.ProfilePicture = &url
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func toUserResponse(user *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		ProfilePicture: user.ProfilePicture,
		Bio:            user.Bio,
		FitnessLevel:   user.FitnessLevel,
		TotalPoints:    user.TotalPoints,
		CreatedAt:      user.CreatedAt,
	}
}
