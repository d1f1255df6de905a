package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"octofit.app/tracker/internal/entity"
	search "octofit.app/tracker/internal/modules/search/service"
	userrepo "octofit.app/tracker/internal/modules/user/repository"
	"octofit.app/tracker/internal/modules/workout/dto"
	"octofit.app/tracker/internal/modules/workout/repository"
	"octofit.app/tracker/pkg/apperror"
)

// suggestionLimit caps how many templates a suggestion call returns.
const suggestionLimit = 5

type WorkoutService interface {
	CreateWorkout(ctx context.Context, req dto.CreateWorkoutRequest) (*dto.WorkoutResponse, error)
	GetWorkoutByID(ctx context.Context, id uuid.UUID) (*dto.WorkoutResponse, error)
	GetAllWorkouts(ctx context.Context, filter dto.WorkoutFilter) (*dto.PaginatedWorkoutResponse, error)
	UpdateWorkout(ctx context.Context, id uuid.UUID, req dto.UpdateWorkoutRequest) (*dto.WorkoutResponse, error)
	DeleteWorkout(ctx context.Context, id uuid.UUID) error
	// GetSuggestions picks templates for the caller. Without an explicit
	// difficulty it falls back to the caller's fitness level.
	GetSuggestions(ctx context.Context, actorID uuid.UUID, filter dto.SuggestionFilter) ([]dto.WorkoutResponse, error)
	SearchWorkouts(ctx context.Context, filter dto.SearchFilter) ([]search.WorkoutDoc, error)
}

type workoutService struct {
	repo          repository.WorkoutRepository
	userRepo      userrepo.UserRepository
	searchService search.SearchService
}

func NewWorkoutService(repo repository.WorkoutRepository, userRepo userrepo.UserRepository, searchService search.SearchService) WorkoutService {
	return &workoutService{
		repo:          repo,
		userRepo:      userRepo,
		searchService: searchService,
	}
}

func (s *workoutService) CreateWorkout(ctx context.Context, req dto.CreateWorkoutRequest) (*dto.WorkoutResponse, error) {
	workout := &entity.Workout{
		Name:            req.Name,
		Description:     req.Description,
		DifficultyLevel: req.DifficultyLevel,
		Category:        req.Category,
		Duration:        req.Duration,
		Exercises:       toExerciseList(req.Exercises),
		EquipmentNeeded: req.EquipmentNeeded,
		TargetMuscles:   req.TargetMuscles,
	}
	if err := s.repo.Create(ctx, workout); err != nil {
		return nil, err
	}

	s.indexWorkout(workout)

	resp := toWorkoutResponse(workout)
	return &resp, nil
}

func (s *workoutService) GetWorkoutByID(ctx context.Context, id uuid.UUID) (*dto.WorkoutResponse, error) {
	workout, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	resp := toWorkoutResponse(workout)
	return &resp, nil
}

func (s *workoutService) GetAllWorkouts(ctx context.Context, filter dto.WorkoutFilter) (*dto.PaginatedWorkoutResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	workouts, total, err := s.repo.FindAll(ctx, repository.Filter{
		Difficulty:  filter.Difficulty,
		Category:    filter.Category,
		MaxDuration: filter.MaxDuration,
		Page:        filter.Page,
		Limit:       filter.Limit,
	})
	if err != nil {
		return nil, err
	}

	data := make([]dto.WorkoutResponse, 0, len(workouts))
	for _, workout := range workouts {
		data = append(data, toWorkoutResponse(workout))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &dto.PaginatedWorkoutResponse{
		Data: data,
		Meta: dto.PaginationMeta{
			CurrentPage: filter.Page,
			TotalPages:  totalPages,
			TotalItems:  total,
			Limit:       filter.Limit,
		},
	}, nil
}

func (s *workoutService) UpdateWorkout(ctx context.Context, id uuid.UUID, req dto.UpdateWorkoutRequest) (*dto.WorkoutResponse, error) {
	workout, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		workout.Name = *req.Name
	}
	if req.Description != nil {
		workout.Description = *req.Description
	}
	if req.DifficultyLevel != nil {
		workout.DifficultyLevel = *req.DifficultyLevel
	}
	if req.Category != nil {
		workout.Category = *req.Category
	}
	if req.Duration != nil {
		workout.Duration = *req.Duration
	}
	if req.Exercises != nil {
		workout.Exercises = toExerciseList(req.Exercises)
	}
	if req.EquipmentNeeded != nil {
		workout.EquipmentNeeded = req.EquipmentNeeded
	}
	if req.TargetMuscles != nil {
		workout.TargetMuscles = req.TargetMuscles
	}

	if err := s.repo.Update(ctx, workout); err != nil {
		return nil, err
	}

	s.indexWorkout(workout)

	resp := toWorkoutResponse(workout)
	return &resp, nil
}

func (s *workoutService) DeleteWorkout(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.searchService != nil {
		if err := s.searchService.DeleteWorkout(id.String()); err != nil {
			log.Printf("failed to delete workout %s from search index: %v", id, err)
		}
	}
	return nil
}

func (s *workoutService) GetSuggestions(ctx context.Context, actorID uuid.UUID, filter dto.SuggestionFilter) ([]dto.WorkoutResponse, error) {
	difficulty := filter.FitnessLevel
	if difficulty == "" {
		user, err := s.userRepo.FindByID(ctx, actorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.ErrNotFound
			}
			return nil, err
		}
		difficulty = user.FitnessLevel
	}

	workouts, err := s.repo.FindSuggestions(ctx, difficulty, filter.Category, filter.MaxDuration, suggestionLimit)
	if err != nil {
		return nil, err
	}

	data := make([]dto.WorkoutResponse, 0, len(workouts))
	for _, workout := range workouts {
		data = append(data, toWorkoutResponse(workout))
	}
	return data, nil
}

func (s *workoutService) SearchWorkouts(ctx context.Context, filter dto.SearchFilter) ([]search.WorkoutDoc, error) {
	if s.searchService == nil {
		return nil, apperror.ErrInternal
	}
	return s.searchService.SearchWorkouts(filter.Query, filter.Difficulty, filter.Category, filter.Limit)
}

func (s *workoutService) indexWorkout(workout *entity.Workout) {
	if s.searchService == nil {
		return
	}
	if err := s.searchService.IndexWorkout(workout); err != nil {
		log.Printf("failed to index workout %s: %v", workout.ID, err)
	}
}

func toExerciseList(inputs []dto.ExerciseInput) entity.ExerciseList {
	exercises := make(entity.ExerciseList, 0, len(inputs))
	for _, in := range inputs {
		exercises = append(exercises, entity.Exercise{
			Name:            in.Name,
			Sets:            in.Sets,
			Reps:            in.Reps,
			DurationSeconds: in.DurationSeconds,
		})
	}
	return exercises
}

func toWorkoutResponse(workout *entity.Workout) dto.WorkoutResponse {
	return dto.WorkoutResponse{
		ID:              workout.ID,
		Name:            workout.Name,
		Description:     workout.Description,
		DifficultyLevel: workout.DifficultyLevel,
		Category:        workout.Category,
		Duration:        workout.Duration,
		Exercises:       workout.Exercises,
		EquipmentNeeded: workout.EquipmentNeeded,
		TargetMuscles:   workout.TargetMuscles,
		CreatedAt:       workout.CreatedAt,
	}
}
