package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"octofit.app/tracker/internal/entity"
	"octofit.app/tracker/internal/modules/leaderboard/dto"
	"octofit.app/tracker/internal/modules/leaderboard/repository"
	"octofit.app/tracker/pkg/apperror"
)

// RefreshChannel is the Redis pub/sub channel refresh events are published on.
const RefreshChannel = "leaderboard_updates"

const cacheTTL = time.Minute

type LeaderboardService interface {
	// RefreshRankings recomputes and persists the snapshot for one period, for
	// users and teams independently. Idempotent for a fixed data set and clock
	// instant.
	RefreshRankings(ctx context.Context, period string) error
	// RefreshAllPeriods runs RefreshRankings for every known period.
	RefreshAllPeriods(ctx context.Context) error
	GetLeaderboard(ctx context.Context, filter dto.LeaderboardFilter) ([]dto.LeaderboardEntryResponse, error)
}

type leaderboardService struct {
	repo        repository.LeaderboardRepository
	redisClient *redis.Client
	now         func() time.Time
}

func NewLeaderboardService(repo repository.LeaderboardRepository, redisClient *redis.Client) LeaderboardService {
	return &leaderboardService{
		repo:        repo,
		redisClient: redisClient,
		now:         time.Now,
	}
}

// periodStart resolves the lower bound of the ranking window at the given
// instant. all_time has no lower bound and yields nil.
func periodStart(period string, now time.Time) *time.Time {
	var start time.Time
	switch period {
	case entity.PeriodDaily:
		start = now.Add(-24 * time.Hour)
	case entity.PeriodWeekly:
		start = now.AddDate(0, 0, -7)
	case entity.PeriodMonthly:
		start = now.AddDate(0, 0, -30)
	default:
		return nil
	}
	return &start
}

func (s *leaderboardService) RefreshRankings(ctx context.Context, period string) error {
	if !entity.ValidPeriod(period) {
		return apperror.ErrBadRequest
	}

	now := s.now()
	since := periodStart(period, now)

	if err := s.refreshUsers(ctx, period, since); err != nil {
		return fmt.Errorf("refresh user rankings for %s: %w", period, err)
	}
	if err := s.refreshTeams(ctx, period, since); err != nil {
		return fmt.Errorf("refresh team rankings for %s: %w", period, err)
	}

	s.invalidateCache(ctx, period)
	s.publishRefresh(ctx, period, now)
	return nil
}

func (s *leaderboardService) RefreshAllPeriods(ctx context.Context) error {
	for _, period := range []string{entity.PeriodDaily, entity.PeriodWeekly, entity.PeriodMonthly, entity.PeriodAllTime} {
		if err := s.RefreshRankings(ctx, period); err != nil {
			return err
		}
	}
	return nil
}

func (s *leaderboardService) refreshUsers(ctx context.Context, period string, since *time.Time) error {
	rows, err := s.repo.UserPoints(ctx, since)
	if err != nil {
		return err
	}
	sortByPoints(rows)

	keep := make([]uuid.UUID, 0, len(rows))
	for i, row := range rows {
		if err := s.repo.UpsertUserEntry(ctx, row.ID, period, i+1, row.Points); err != nil {
			return err
		}
		keep = append(keep, row.ID)
	}

	return s.repo.DeleteUserEntriesNotIn(ctx, period, keep)
}

func (s *leaderboardService) refreshTeams(ctx context.Context, period string, since *time.Time) error {
	rows, err := s.repo.TeamPoints(ctx, since)
	if err != nil {
		return err
	}
	sortByPoints(rows)

	keep := make([]uuid.UUID, 0, len(rows))
	for i, row := range rows {
		if err := s.repo.UpsertTeamEntry(ctx, row.ID, period, i+1, row.Points); err != nil {
			return err
		}
		keep = append(keep, row.ID)

		// The team aggregate column mirrors the unbounded member sum.
		if period == entity.PeriodAllTime {
			if err := s.repo.UpdateTeamTotalPoints(ctx, row.ID, row.Points); err != nil {
				return err
			}
		}
	}

	return s.repo.DeleteTeamEntriesNotIn(ctx, period, keep)
}

// sortByPoints orders a ranking pass: points descending, name ascending as the
// deterministic tie-break. Rank is the 1-based position afterwards.
func sortByPoints(rows []repository.EntityPoints) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].Name < rows[j].Name
	})
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, filter dto.LeaderboardFilter) ([]dto.LeaderboardEntryResponse, error) {
	if filter.Period == "" {
		filter.Period = entity.PeriodAllTime
	}
	if !entity.ValidPeriod(filter.Period) {
		return nil, apperror.ErrBadRequest
	}
	if filter.Type == "" {
		filter.Type = "user"
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	cacheKey := fmt.Sprintf("leaderboard:%s:%s:%d", filter.Period, filter.Type, filter.Limit)
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var entries []dto.LeaderboardEntryResponse
			if jsonErr := json.Unmarshal([]byte(cached), &entries); jsonErr == nil {
				return entries, nil
			}
		}
	}

	rows, err := s.repo.ListEntries(ctx, filter.Period, filter.Type, filter.Limit)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntryResponse, 0, len(rows))
	for _, row := range rows {
		entry := dto.LeaderboardEntryResponse{
			Rank:   row.Rank,
			Points: row.Points,
			Period: row.Period,
		}
		if row.User != nil {
			entry.User = &dto.LeaderboardUser{
				ID:             row.User.ID,
				Username:       row.User.Username,
				ProfilePicture: row.User.ProfilePicture,
				FitnessLevel:   row.User.FitnessLevel,
			}
		}
		if row.Team != nil {
			entry.Team = &dto.LeaderboardTeam{
				ID:   row.Team.ID,
				Name: row.Team.Name,
			}
		}
		entries = append(entries, entry)
	}

	if s.redisClient != nil {
		if payload, jsonErr := json.Marshal(entries); jsonErr == nil {
			s.redisClient.SetEx(ctx, cacheKey, payload, cacheTTL)
		}
	}

	return entries, nil
}

func (s *leaderboardService) invalidateCache(ctx context.Context, period string) {
	if s.redisClient == nil {
		return
	}

	keys, err := s.redisClient.Keys(ctx, fmt.Sprintf("leaderboard:%s:*", period)).Result()
	if err != nil {
		log.Printf("failed to list leaderboard cache keys: %v", err)
		return
	}
	if len(keys) > 0 {
		s.redisClient.Del(ctx, keys...)
	}
}

func (s *leaderboardService) publishRefresh(ctx context.Context, period string, now time.Time) {
	if s.redisClient == nil {
		return
	}

	payload, err := json.Marshal(dto.RefreshEvent{Period: period, RefreshedAt: now})
	if err != nil {
		return
	}
	s.redisClient.Publish(ctx, RefreshChannel, payload)
}
