package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"octofit.app/tracker/internal/entity"
	activityrepo "octofit.app/tracker/internal/modules/activity/repository"
	"octofit.app/tracker/internal/modules/team/dto"
	"octofit.app/tracker/internal/modules/team/repository"
	userrepo "octofit.app/tracker/internal/modules/user/repository"
	"octofit.app/tracker/pkg/apperror"
)

type TeamService interface {
	CreateTeam(ctx context.Context, actorID uuid.UUID, req dto.CreateTeamRequest) (*dto.TeamResponse, error)
	GetTeamByID(ctx context.Context, id uuid.UUID) (*dto.TeamResponse, error)
	GetAllTeams(ctx context.Context, filter dto.TeamFilter) (*dto.PaginatedTeamResponse, error)
	UpdateTeam(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, req dto.UpdateTeamRequest) (*dto.TeamResponse, error)
	DeleteTeam(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error
	AddMember(ctx context.Context, teamID, userID uuid.UUID) (*dto.TeamResponse, error)
	RemoveMember(ctx context.Context, teamID, userID uuid.UUID) (*dto.TeamResponse, error)
	GetTeamStats(ctx context.Context, teamID uuid.UUID) (*dto.TeamStatsResponse, error)
}

type teamService struct {
	repo         repository.TeamRepository
	userRepo     userrepo.UserRepository
	activityRepo activityrepo.ActivityRepository
}

func NewTeamService(repo repository.TeamRepository, userRepo userrepo.UserRepository, activityRepo activityrepo.ActivityRepository) TeamService {
	return &teamService{repo: repo, userRepo: userRepo, activityRepo: activityRepo}
}

func (s *teamService) CreateTeam(ctx context.Context, actorID uuid.UUID, req dto.CreateTeamRequest) (*dto.TeamResponse, error) {
	if _, err := s.repo.FindByName(ctx, req.Name); err == nil {
		return nil, apperror.New(http.StatusConflict, "team name already taken", apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	creator, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	team := &entity.Team{
		Name:        req.Name,
		Description: req.Description,
		CreatedByID: creator.ID,
	}
	if err := s.repo.Create(ctx, team); err != nil {
		return nil, err
	}

	// The creator joins their own team.
	if err := s.repo.AddMember(ctx, team, creator); err != nil {
		return nil, err
	}

	return s.GetTeamByID(ctx, team.ID)
}

func (s *teamService) GetTeamByID(ctx context.Context, id uuid.UUID) (*dto.TeamResponse, error) {
	team, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	resp := toTeamResponse(team)
	return &resp, nil
}

func (s *teamService) GetAllTeams(ctx context.Context, filter dto.TeamFilter) (*dto.PaginatedTeamResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	teams, total, err := s.repo.FindAll(ctx, filter.Search, filter.Page, filter.Limit)
	if err != nil {
		return nil, err
	}

	data := make([]dto.TeamResponse, 0, len(teams))
	for _, team := range teams {
		data = append(data, toTeamResponse(team))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &dto.PaginatedTeamResponse{
		Data: data,
		Meta: dto.PaginationMeta{
			CurrentPage: filter.Page,
			TotalPages:  totalPages,
			TotalItems:  total,
			Limit:       filter.Limit,
		},
	}, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, req dto.UpdateTeamRequest) (*dto.TeamResponse, error) {
	team, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if team.CreatedByID != actorID && !isAdmin {
		return nil, apperror.ErrForbidden
	}

	if req.Name != nil && *req.Name != team.Name {
		if _, err := s.repo.FindByName(ctx, *req.Name); err == nil {
			return nil, apperror.New(http.StatusConflict, "team name already taken", apperror.ErrConflict)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		team.Name = *req.Name
	}
	if req.Description != nil {
		team.Description = *req.Description
	}

	if err := s.repo.Update(ctx, team); err != nil {
		return nil, err
	}

	resp := toTeamResponse(team)
	return &resp, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	team, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if team.CreatedByID != actorID && !isAdmin {
		return apperror.ErrForbidden
	}

	return s.repo.Delete(ctx, id)
}

func (s *teamService) AddMember(ctx context.Context, teamID, userID uuid.UUID) (*dto.TeamResponse, error) {
	team, err := s.repo.FindByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "team not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "user not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	member, err := s.repo.IsMember(ctx, teamID, userID)
	if err != nil {
		return nil, err
	}
	if member {
		return nil, apperror.New(http.StatusConflict, "user is already a member", apperror.ErrConflict)
	}

	if err := s.repo.AddMember(ctx, team, user); err != nil {
		return nil, err
	}

	return s.GetTeamByID(ctx, teamID)
}

func (s *teamService) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) (*dto.TeamResponse, error) {
	team, err := s.repo.FindByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "team not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "user not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	member, err := s.repo.IsMember(ctx, teamID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, apperror.New(http.StatusNotFound, "user is not a member", apperror.ErrNotFound)
	}

	if err := s.repo.RemoveMember(ctx, team, user); err != nil {
		return nil, err
	}

	return s.GetTeamByID(ctx, teamID)
}

func (s *teamService) GetTeamStats(ctx context.Context, teamID uuid.UUID) (*dto.TeamStatsResponse, error) {
	if _, err := s.repo.FindByID(ctx, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	members, err := s.repo.CountMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}
	points, err := s.repo.SumMemberPoints(ctx, teamID)
	if err != nil {
		return nil, err
	}
	summary, err := s.activityRepo.SummaryByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	return &dto.TeamStatsResponse{
		MembersCount:    members,
		TotalPoints:     points,
		TotalActivities: summary.TotalActivities,
		TotalDuration:   summary.TotalDuration,
		TotalDistance:   summary.TotalDistance,
	}, nil
}

func toTeamResponse(team *entity.Team) dto.TeamResponse {
	members := make([]dto.TeamMember, 0, len(team.Members))
	for _, m := range team.Members {
		members = append(members, dto.TeamMember{
			ID:             m.ID,
			Username:       m.Username,
			ProfilePicture: m.ProfilePicture,
			FitnessLevel:   m.FitnessLevel,
			TotalPoints:    m.TotalPoints,
		})
	}
	return dto.TeamResponse{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		CreatedByID: team.CreatedByID,
		TotalPoints: team.TotalPoints,
		Members:     members,
		CreatedAt:   team.CreatedAt,
	}
}
