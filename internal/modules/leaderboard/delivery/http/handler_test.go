package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"octofit.app/tracker/internal/modules/leaderboard/dto"
	"octofit.app/tracker/pkg/apperror"
)

type fakeLeaderboardService struct {
	getFunc     func(ctx context.Context, filter dto.LeaderboardFilter) ([]dto.LeaderboardEntryResponse, error)
	refreshFunc func(ctx context.Context, period string) error
}

func (f *fakeLeaderboardService) GetLeaderboard(ctx context.Context, filter dto.LeaderboardFilter) ([]dto.LeaderboardEntryResponse, error) {
	return f.getFunc(ctx, filter)
}

func (f *fakeLeaderboardService) RefreshRankings(ctx context.Context, period string) error {
	return f.refreshFunc(ctx, period)
}

func (f *fakeLeaderboardService) RefreshAllPeriods(ctx context.Context) error {
	return nil
}

func setupRouter(svc *fakeLeaderboardService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewLeaderboardHandler(svc, nil)
	router := gin.New()
	router.GET("/api/leaderboard", h.GetLeaderboard)
	router.POST("/api/leaderboard/refresh", h.RefreshRankings)
	return router
}

func TestGetLeaderboardPassesQueryFilter(t *testing.T) {
	var got dto.LeaderboardFilter
	svc := &fakeLeaderboardService{
		getFunc: func(ctx context.Context, filter dto.LeaderboardFilter) ([]dto.LeaderboardEntryResponse, error) {
			got = filter
			return []dto.LeaderboardEntryResponse{{Rank: 1, Points: 120, Period: filter.Period}}, nil
		},
	}
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard?period=weekly&type=team&limit=10", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "weekly", got.Period)
	assert.Equal(t, "team", got.Type)
	assert.Equal(t, 10, got.Limit)
	assert.Contains(t, w.Body.String(), `"rank":1`)
}

func TestGetLeaderboardRejectsBadPeriod(t *testing.T) {
	svc := &fakeLeaderboardService{
		getFunc: func(ctx context.Context, filter dto.LeaderboardFilter) ([]dto.LeaderboardEntryResponse, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard?period=quarterly", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestRefreshRankingsReturnsOK(t *testing.T) {
	var refreshed string
	svc := &fakeLeaderboardService{
		refreshFunc: func(ctx context.Context, period string) error {
			refreshed = period
			return nil
		},
	}
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/leaderboard/refresh", strings.NewReader(`{"period":"daily"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "daily", refreshed)
}

func TestRefreshRankingsRequiresPeriod(t *testing.T) {
	svc := &fakeLeaderboardService{
		refreshFunc: func(ctx context.Context, period string) error {
			t.Fatal("service should not be called")
			return nil
		},
	}
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/leaderboard/refresh", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshRankingsMapsServiceErrors(t *testing.T) {
	svc := &fakeLeaderboardService{
		refreshFunc: func(ctx context.Context, period string) error {
			return apperror.ErrBadRequest
		},
	}
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/leaderboard/refresh", strings.NewReader(`{"period":"daily"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
