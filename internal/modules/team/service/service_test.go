package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"octofit.app/tracker/internal/entity"
	activityrepo "octofit.app/tracker/internal/modules/activity/repository"
	"octofit.app/tracker/internal/modules/team/dto"
	"octofit.app/tracker/pkg/apperror"
)

type fakeTeamRepo struct {
	teams   map[uuid.UUID]*entity.Team
	members map[uuid.UUID][]uuid.UUID
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{
		teams:   make(map[uuid.UUID]*entity.Team),
		members: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (f *fakeTeamRepo) Create(ctx context.Context, team *entity.Team) error {
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}
	f.teams[team.ID] = team
	return nil
}

func (f *fakeTeamRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Team, error) {
	team, ok := f.teams[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return team, nil
}

func (f *fakeTeamRepo) FindByName(ctx context.Context, name string) (*entity.Team, error) {
	for _, team := range f.teams {
		if team.Name == name {
			return team, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTeamRepo) FindAll(ctx context.Context, search string, page, limit int) ([]*entity.Team, int64, error) {
	var out []*entity.Team
	for _, team := range f.teams {
		out = append(out, team)
	}
	return out, int64(len(out)), nil
}

func (f *fakeTeamRepo) Update(ctx context.Context, team *entity.Team) error {
	f.teams[team.ID] = team
	return nil
}

func (f *fakeTeamRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.teams, id)
	return nil
}

func (f *fakeTeamRepo) AddMember(ctx context.Context, team *entity.Team, user *entity.User) error {
	f.members[team.ID] = append(f.members[team.ID], user.ID)
	team.Members = append(team.Members, user)
	return nil
}

func (f *fakeTeamRepo) RemoveMember(ctx context.Context, team *entity.Team, user *entity.User) error {
	ids := f.members[team.ID]
	for i, id := range ids {
		if id == user.ID {
			f.members[team.ID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeTeamRepo) IsMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	for _, id := range f.members[teamID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTeamRepo) CountMembers(ctx context.Context, teamID uuid.UUID) (int64, error) {
	return int64(len(f.members[teamID])), nil
}

func (f *fakeTeamRepo) SumMemberPoints(ctx context.Context, teamID uuid.UUID) (int, error) {
	return 0, nil
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
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (f *fakeUserRepo) TeamsOf(ctx context.Context, userID uuid.UUID) ([]*entity.Team, error) {
	return nil, nil
}

func (f *fakeUserRepo) CountTeams(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}

type fakeActivityRepo struct{}

func (fakeActivityRepo) Create(ctx context.Context, activity *entity.Activity) error { return nil }
func (fakeActivityRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Activity, error) {
	return nil, gorm.ErrRecordNotFound
}
func (fakeActivityRepo) FindAll(ctx context.Context, filter activityrepo.Filter) ([]*entity.Activity, int64, error) {
	return nil, 0, nil
}
func (fakeActivityRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Activity, error) {
	return nil, nil
}
func (fakeActivityRepo) Update(ctx context.Context, activity *entity.Activity) error { return nil }
func (fakeActivityRepo) Delete(ctx context.Context, id uuid.UUID) error              { return nil }
func (fakeActivityRepo) RefreshUserTotalPoints(ctx context.Context, userID uuid.UUID) error {
	return nil
}
func (fakeActivityRepo) SummaryByUser(ctx context.Context, userID uuid.UUID) (*activityrepo.ActivitySummary, error) {
	return &activityrepo.ActivitySummary{}, nil
}
func (fakeActivityRepo) SummaryByTeam(ctx context.Context, teamID uuid.UUID) (*activityrepo.ActivitySummary, error) {
	return &activityrepo.ActivitySummary{TotalActivities: 7, TotalDuration: 300, TotalDistance: 42.5}, nil
}

func newUser(username string) *entity.User {
	return &entity.User{ID: uuid.New(), Username: username, FitnessLevel: entity.FitnessBeginner}
}

func TestCreateTeamAddsCreatorAsMember(t *testing.T) {
	creator := newUser("ironman")
	repo := newFakeTeamRepo()
	svc := NewTeamService(repo, newFakeUserRepo(creator), fakeActivityRepo{})

	created, err := svc.CreateTeam(context.Background(), creator.ID, dto.CreateTeamRequest{
		Name:        "Team Marvel",
		Description: "Earth's Mightiest Heroes",
	})
	require.NoError(t, err)

	assert.Equal(t, creator.ID, created.CreatedByID)
	require.Len(t, created.Members, 1)
	assert.Equal(t, "ironman", created.Members[0].Username)
}

func TestCreateTeamRejectsDuplicateName(t *testing.T) {
	creator := newUser("batman")
	repo := newFakeTeamRepo()
	svc := NewTeamService(repo, newFakeUserRepo(creator), fakeActivityRepo{})

	_, err := svc.CreateTeam(context.Background(), creator.ID, dto.CreateTeamRequest{Name: "Team DC"})
	require.NoError(t, err)

	_, err = svc.CreateTeam(context.Background(), creator.ID, dto.CreateTeamRequest{Name: "Team DC"})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestAddMemberMissingUser(t *testing.T) {
	creator := newUser("superman")
	repo := newFakeTeamRepo()
	svc := NewTeamService(repo, newFakeUserRepo(creator), fakeActivityRepo{})

	created, err := svc.CreateTeam(context.Background(), creator.ID, dto.CreateTeamRequest{Name: "Team DC"})
	require.NoError(t, err)

	_, err = svc.AddMember(context.Background(), created.ID, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestAddMemberTwiceConflicts(t *testing.T) {
	creator := newUser("thor")
	joiner := newUser("hulk")
	repo := newFakeTeamRepo()
	svc := NewTeamService(repo, newFakeUserRepo(creator, joiner), fakeActivityRepo{})

	created, err := svc.CreateTeam(context.Background(), creator.ID, dto.CreateTeamRequest{Name: "Team Marvel"})
	require.NoError(t, err)

	_, err = svc.AddMember(context.Background(), created.ID, joiner.ID)
	require.NoError(t, err)

	_, err = svc.AddMember(context.Background(), created.ID, joiner.ID)
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestRemoveMemberNotInTeam(t *testing.T) {
	creator := newUser("aquaman")
	outsider := newUser("theflash")
	repo := newFakeTeamRepo()
	svc := NewTeamService(repo, newFakeUserRepo(creator, outsider), fakeActivityRepo{})

	created, err := svc.CreateTeam(context.Background(), creator.ID, dto.CreateTeamRequest{Name: "Team DC"})
	require.NoError(t, err)

	_, err = svc.RemoveMember(context.Background(), created.ID, outsider.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateTeamOnlyOwnerOrAdmin(t *testing.T) {
	creator := newUser("wonderwoman")
	stranger := newUser("greenlantern")
	repo := newFakeTeamRepo()
	svc := NewTeamService(repo, newFakeUserRepo(creator, stranger), fakeActivityRepo{})

	created, err := svc.CreateTeam(context.Background(), creator.ID, dto.CreateTeamRequest{Name: "Team DC"})
	require.NoError(t, err)

	newName := "Justice League"
	_, err = svc.UpdateTeam(context.Background(), stranger.ID, false, created.ID, dto.UpdateTeamRequest{Name: &newName})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	updated, err := svc.UpdateTeam(context.Background(), stranger.ID, true, created.ID, dto.UpdateTeamRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Justice League", updated.Name)
}

func TestGetTeamStats(t *testing.T) {
	creator := newUser("spiderman")
	repo := newFakeTeamRepo()
	svc := NewTeamService(repo, newFakeUserRepo(creator), fakeActivityRepo{})

	created, err := svc.CreateTeam(context.Background(), creator.ID, dto.CreateTeamRequest{Name: "Team Marvel"})
	require.NoError(t, err)

	stats, err := svc.GetTeamStats(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.MembersCount)
	assert.Equal(t, int64(7), stats.TotalActivities)
	assert.Equal(t, int64(300), stats.TotalDuration)
	assert.InDelta(t, 42.5, stats.TotalDistance, 1e-9)
}
