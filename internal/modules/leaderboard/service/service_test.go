package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"octofit.app/tracker/internal/entity"
	"octofit.app/tracker/internal/modules/leaderboard/dto"
	"octofit.app/tracker/internal/modules/leaderboard/repository"
	"octofit.app/tracker/pkg/apperror"
)

type upsertCall struct {
	id     uuid.UUID
	period string
	rank   int
	points int
}

type fakeLeaderboardRepo struct {
	users []repository.EntityPoints
	teams []repository.EntityPoints

	userSince []*time.Time
	teamSince []*time.Time

	userUpserts []upsertCall
	teamUpserts []upsertCall

	userPruneKeep [][]uuid.UUID
	teamPruneKeep [][]uuid.UUID

	teamTotals map[uuid.UUID]int

	entries []*entity.LeaderboardEntry
}

func (f *fakeLeaderboardRepo) UserPoints(ctx context.Context, since *time.Time) ([]repository.EntityPoints, error) {
	f.userSince = append(f.userSince, since)
	out := make([]repository.EntityPoints, len(f.users))
	copy(out, f.users)
	return out, nil
}

func (f *fakeLeaderboardRepo) TeamPoints(ctx context.Context, since *time.Time) ([]repository.EntityPoints, error) {
	f.teamSince = append(f.teamSince, since)
	out := make([]repository.EntityPoints, len(f.teams))
	copy(out, f.teams)
	return out, nil
}

func (f *fakeLeaderboardRepo) UpsertUserEntry(ctx context.Context, userID uuid.UUID, period string, rank, points int) error {
	f.userUpserts = append(f.userUpserts, upsertCall{userID, period, rank, points})
	return nil
}

func (f *fakeLeaderboardRepo) UpsertTeamEntry(ctx context.Context, teamID uuid.UUID, period string, rank, points int) error {
	f.teamUpserts = append(f.teamUpserts, upsertCall{teamID, period, rank, points})
	return nil
}

func (f *fakeLeaderboardRepo) DeleteUserEntriesNotIn(ctx context.Context, period string, keep []uuid.UUID) error {
	f.userPruneKeep = append(f.userPruneKeep, keep)
	return nil
}

func (f *fakeLeaderboardRepo) DeleteTeamEntriesNotIn(ctx context.Context, period string, keep []uuid.UUID) error {
	f.teamPruneKeep = append(f.teamPruneKeep, keep)
	return nil
}

func (f *fakeLeaderboardRepo) ListEntries(ctx context.Context, period, entityType string, limit int) ([]*entity.LeaderboardEntry, error) {
	return f.entries, nil
}

func (f *fakeLeaderboardRepo) UpdateTeamTotalPoints(ctx context.Context, teamID uuid.UUID, points int) error {
	if f.teamTotals == nil {
		f.teamTotals = make(map[uuid.UUID]int)
	}
	f.teamTotals[teamID] = points
	return nil
}

func newTestService(repo repository.LeaderboardRepository, now time.Time) *leaderboardService {
	return &leaderboardService{
		repo: repo,
		now:  func() time.Time { return now },
	}
}

func TestRefreshRankingsOrdersByPointsDescending(t *testing.T) {
	alice, bob, carol := uuid.New(), uuid.New(), uuid.New()
	repo := &fakeLeaderboardRepo{
		users: []repository.EntityPoints{
			{ID: alice, Name: "alice", Points: 40},
			{ID: bob, Name: "bob", Points: 120},
			{ID: carol, Name: "carol", Points: 75},
		},
	}
	svc := newTestService(repo, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	require.NoError(t, svc.RefreshRankings(context.Background(), entity.PeriodAllTime))

	require.Len(t, repo.userUpserts, 3)
	assert.Equal(t, upsertCall{bob, entity.PeriodAllTime, 1, 120}, repo.userUpserts[0])
	assert.Equal(t, upsertCall{carol, entity.PeriodAllTime, 2, 75}, repo.userUpserts[1])
	assert.Equal(t, upsertCall{alice, entity.PeriodAllTime, 3, 40}, repo.userUpserts[2])

	// every ranked user survives the prune
	require.Len(t, repo.userPruneKeep, 1)
	assert.ElementsMatch(t, []uuid.UUID{alice, bob, carol}, repo.userPruneKeep[0])
}

func TestRefreshRankingsTieBreaksByName(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	repo := &fakeLeaderboardRepo{
		users: []repository.EntityPoints{
			{ID: a, Name: "zoe", Points: 50},
			{ID: b, Name: "amy", Points: 50},
		},
	}
	svc := newTestService(repo, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	require.NoError(t, svc.RefreshRankings(context.Background(), entity.PeriodAllTime))

	require.Len(t, repo.userUpserts, 2)
	assert.Equal(t, b, repo.userUpserts[0].id) // amy before zoe
	assert.Equal(t, 1, repo.userUpserts[0].rank)
	assert.Equal(t, a, repo.userUpserts[1].id)
	assert.Equal(t, 2, repo.userUpserts[1].rank)
}

func TestRefreshRankingsIsIdempotentAtFixedInstant(t *testing.T) {
	u1, u2 := uuid.New(), uuid.New()
	repo := &fakeLeaderboardRepo{
		users: []repository.EntityPoints{
			{ID: u1, Name: "u1", Points: 30},
			{ID: u2, Name: "u2", Points: 90},
		},
	}
	svc := newTestService(repo, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	require.NoError(t, svc.RefreshRankings(context.Background(), entity.PeriodWeekly))
	first := append([]upsertCall(nil), repo.userUpserts...)

	require.NoError(t, svc.RefreshRankings(context.Background(), entity.PeriodWeekly))
	second := repo.userUpserts[len(first):]

	assert.Equal(t, first, second)
}

func TestRefreshRankingsResolvesWindows(t *testing.T) {
	now := time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)
	repo := &fakeLeaderboardRepo{}
	svc := newTestService(repo, now)

	tests := []struct {
		period string
		want   *time.Time
	}{
		{entity.PeriodDaily, timePtr(now.Add(-24 * time.Hour))},
		{entity.PeriodWeekly, timePtr(now.AddDate(0, 0, -7))},
		{entity.PeriodMonthly, timePtr(now.AddDate(0, 0, -30))},
		{entity.PeriodAllTime, nil},
	}

	for i, tt := range tests {
		require.NoError(t, svc.RefreshRankings(context.Background(), tt.period))
		got := repo.userSince[i]
		if tt.want == nil {
			assert.Nil(t, got, "period %s", tt.period)
		} else {
			require.NotNil(t, got, "period %s", tt.period)
			assert.True(t, tt.want.Equal(*got), "period %s: want %v got %v", tt.period, *tt.want, *got)
		}
	}
}

func TestRefreshRankingsRejectsUnknownPeriod(t *testing.T) {
	svc := newTestService(&fakeLeaderboardRepo{}, time.Now())
	err := svc.RefreshRankings(context.Background(), "yearly")
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestRefreshRankingsSyncsTeamTotalsOnAllTimeOnly(t *testing.T) {
	team := uuid.New()
	repo := &fakeLeaderboardRepo{
		teams: []repository.EntityPoints{{ID: team, Name: "Team Marvel", Points: 250}},
	}
	svc := newTestService(repo, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	require.NoError(t, svc.RefreshRankings(context.Background(), entity.PeriodWeekly))
	assert.Empty(t, repo.teamTotals)

	require.NoError(t, svc.RefreshRankings(context.Background(), entity.PeriodAllTime))
	assert.Equal(t, 250, repo.teamTotals[team])
}

func TestGetLeaderboardMapsEntries(t *testing.T) {
	userID := uuid.New()
	teamID := uuid.New()
	repo := &fakeLeaderboardRepo{
		entries: []*entity.LeaderboardEntry{
			{
				UserID: &userID,
				User:   &entity.User{ID: userID, Username: "alice", FitnessLevel: entity.FitnessAdvanced},
				Period: entity.PeriodAllTime,
				Rank:   1,
				Points: 120,
			},
			{
				TeamID: &teamID,
				Team:   &entity.Team{ID: teamID, Name: "Team DC"},
				Period: entity.PeriodAllTime,
				Rank:   2,
				Points: 80,
			},
		},
	}
	svc := newTestService(repo, time.Now())

	entries, err := svc.GetLeaderboard(context.Background(), dto.LeaderboardFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// an entry references exactly one of user or team
	assert.NotNil(t, entries[0].User)
	assert.Nil(t, entries[0].Team)
	assert.Equal(t, "alice", entries[0].User.Username)
	assert.Equal(t, 1, entries[0].Rank)

	assert.Nil(t, entries[1].User)
	assert.NotNil(t, entries[1].Team)
	assert.Equal(t, "Team DC", entries[1].Team.Name)
}

func TestGetLeaderboardRejectsUnknownPeriod(t *testing.T) {
	svc := newTestService(&fakeLeaderboardRepo{}, time.Now())
	_, err := svc.GetLeaderboard(context.Background(), dto.LeaderboardFilter{Period: "quarterly"})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
