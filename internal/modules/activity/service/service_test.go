package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"octofit.app/tracker/internal/entity"
	"octofit.app/tracker/internal/modules/activity/dto"
	"octofit.app/tracker/internal/modules/activity/repository"
	"octofit.app/tracker/pkg/apperror"
)

type fakeActivityRepo struct {
	activities map[uuid.UUID]*entity.Activity

	created        []*entity.Activity
	refreshedUsers []uuid.UUID
	deleted        []uuid.UUID
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{activities: make(map[uuid.UUID]*entity.Activity)}
}

func (f *fakeActivityRepo) Create(ctx context.Context, activity *entity.Activity) error {
	if activity.ID == uuid.Nil {
		activity.ID = uuid.New()
	}
	f.activities[activity.ID] = activity
	f.created = append(f.created, activity)
	return nil
}

func (f *fakeActivityRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Activity, error) {
	activity, ok := f.activities[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return activity, nil
}

func (f *fakeActivityRepo) FindAll(ctx context.Context, filter repository.Filter) ([]*entity.Activity, int64, error) {
	var out []*entity.Activity
	for _, a := range f.activities {
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (f *fakeActivityRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Activity, error) {
	var out []*entity.Activity
	for _, a := range f.activities {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeActivityRepo) Update(ctx context.Context, activity *entity.Activity) error {
	f.activities[activity.ID] = activity
	return nil
}

func (f *fakeActivityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.activities, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeActivityRepo) RefreshUserTotalPoints(ctx context.Context, userID uuid.UUID) error {
	f.refreshedUsers = append(f.refreshedUsers, userID)
	return nil
}

func (f *fakeActivityRepo) SummaryByUser(ctx context.Context, userID uuid.UUID) (*repository.ActivitySummary, error) {
	return &repository.ActivitySummary{}, nil
}

func (f *fakeActivityRepo) SummaryByTeam(ctx context.Context, teamID uuid.UUID) (*repository.ActivitySummary, error) {
	return &repository.ActivitySummary{}, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindAll(ctx context.Context, search string, page, limit int) ([]*entity.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) TeamsOf(ctx context.Context, userID uuid.UUID) ([]*entity.Team, error) {
	return nil, nil
}

func (f *fakeUserRepo) CountTeams(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}

func testUser() *entity.User {
	return &entity.User{
		ID:           uuid.New(),
		Username:     "ironman",
		Email:        "tony.stark@marvel.com",
		FitnessLevel: entity.FitnessAdvanced,
	}
}

func TestCreateActivityComputesPoints(t *testing.T) {
	owner := testUser()
	repo := newFakeActivityRepo()
	svc := NewActivityService(repo, newFakeUserRepo(owner))

	created, err := svc.CreateActivity(context.Background(), owner.ID, dto.CreateActivityRequest{
		ActivityType: entity.ActivityRunning,
		Duration:     30,
		Date:         time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// 30 minutes of running: base 3, multiplier 1.5
	assert.Equal(t, 4, created.PointsEarned)
	assert.Equal(t, owner.ID, created.UserID)
	assert.Equal(t, "ironman", created.Username)

	// the owner's derived total is refreshed after the write
	require.Len(t, repo.refreshedUsers, 1)
	assert.Equal(t, owner.ID, repo.refreshedUsers[0])
}

func TestCreateActivityKeepsExplicitPoints(t *testing.T) {
	owner := testUser()
	repo := newFakeActivityRepo()
	svc := NewActivityService(repo, newFakeUserRepo(owner))

	created, err := svc.CreateActivity(context.Background(), owner.ID, dto.CreateActivityRequest{
		ActivityType: entity.ActivityYoga,
		Duration:     60,
		PointsEarned: 99,
		Date:         time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, 99, created.PointsEarned)
}

func TestCreateActivityForMissingUser(t *testing.T) {
	repo := newFakeActivityRepo()
	svc := NewActivityService(repo, newFakeUserRepo())

	_, err := svc.CreateActivity(context.Background(), uuid.New(), dto.CreateActivityRequest{
		ActivityType: entity.ActivityRunning,
		Duration:     30,
		Date:         time.Now(),
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Empty(t, repo.created)
}

func TestCreateActivityOnBehalfOfOtherUser(t *testing.T) {
	owner := testUser()
	actor := testUser()
	repo := newFakeActivityRepo()
	svc := NewActivityService(repo, newFakeUserRepo(owner, actor))

	created, err := svc.CreateActivity(context.Background(), actor.ID, dto.CreateActivityRequest{
		UserID:       owner.ID.String(),
		ActivityType: entity.ActivityCycling,
		Duration:     45,
		Date:         time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, created.UserID)
}

func TestUpdateActivityKeepsStoredPoints(t *testing.T) {
	owner := testUser()
	repo := newFakeActivityRepo()
	svc := NewActivityService(repo, newFakeUserRepo(owner))

	created, err := svc.CreateActivity(context.Background(), owner.ID, dto.CreateActivityRequest{
		ActivityType: entity.ActivityRunning,
		Duration:     30,
		Date:         time.Now(),
	})
	require.NoError(t, err)

	longer := 120
	updated, err := svc.UpdateActivity(context.Background(), created.ID, dto.UpdateActivityRequest{
		Duration: &longer,
	})
	require.NoError(t, err)

	// editing the duration alone does not touch the stored score
	assert.Equal(t, created.PointsEarned, updated.PointsEarned)
	assert.Equal(t, 120, updated.Duration)
}

func TestUpdateActivityClearedPointsRecompute(t *testing.T) {
	owner := testUser()
	repo := newFakeActivityRepo()
	svc := NewActivityService(repo, newFakeUserRepo(owner))

	created, err := svc.CreateActivity(context.Background(), owner.ID, dto.CreateActivityRequest{
		ActivityType: entity.ActivityRunning,
		Duration:     30,
		PointsEarned: 50,
		Date:         time.Now(),
	})
	require.NoError(t, err)

	zero := 0
	updated, err := svc.UpdateActivity(context.Background(), created.ID, dto.UpdateActivityRequest{
		PointsEarned: &zero,
	})
	require.NoError(t, err)

	// explicit zero clears the override and recomputes from duration and type
	assert.Equal(t, 4, updated.PointsEarned)
}

func TestDeleteActivityRefreshesOwnerTotal(t *testing.T) {
	owner := testUser()
	repo := newFakeActivityRepo()
	svc := NewActivityService(repo, newFakeUserRepo(owner))

	created, err := svc.CreateActivity(context.Background(), owner.ID, dto.CreateActivityRequest{
		ActivityType: entity.ActivityWalking,
		Duration:     50,
		Date:         time.Now(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteActivity(context.Background(), created.ID))

	assert.Equal(t, []uuid.UUID{created.ID}, repo.deleted)
	// refreshed once on create, once on delete
	assert.Equal(t, []uuid.UUID{owner.ID, owner.ID}, repo.refreshedUsers)
}

func TestDeleteActivityNotFound(t *testing.T) {
	svc := NewActivityService(newFakeActivityRepo(), newFakeUserRepo())
	err := svc.DeleteActivity(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetAllActivitiesRejectsBadDate(t *testing.T) {
	svc := NewActivityService(newFakeActivityRepo(), newFakeUserRepo())
	_, err := svc.GetAllActivities(context.Background(), dto.ActivityFilter{StartDate: "june 1st"})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}
