package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mikiasgoitom/Convene/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Convene/internal/usecase/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userFixture struct {
	uc      *UserUsecase
	repo    *fakeUserRepo
	jwt     *fakeJWT
	mailer  *fakeMailer
	metrics *countingMetrics
}

func newUserFixture(cfg fakeConfig) *userFixture {
	f := &userFixture{
		repo:    newFakeUserRepo(),
		jwt:     &fakeJWT{},
		mailer:  &fakeMailer{},
		metrics: newCountingMetrics(),
	}
	f.uc = NewUserUsecase(f.repo, fakeHasher{}, f.jwt, f.mailer, noopLogger{}, cfg, fakeValidator{}, &seqUUID{}, f.metrics)
	return f
}

func TestRegister_CreatesPendingUser(t *testing.T) {
	f := newUserFixture(fakeConfig{})
	user, err := f.uc.Register(context.Background(), usecasecontract.RegisterInput{
		Name:     "Ann",
		Email:    "a@x.com",
		Password: "pw1",
		Skills:   []string{"go"},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.UserStatusPending, user.Status)
	assert.Equal(t, entity.UserRoleUnauthorized, user.Role)
	assert.Equal(t, entity.DefaultProfilePicture(), user.ProfilePicture)
	assert.Equal(t, "hashed:pw1", user.PasswordHash)
	assert.Equal(t, []string{"go"}, user.Skills)
	assert.Equal(t, 1, f.metrics.registrations[outcomeSuccess])
}

func TestRegister_MissingFields(t *testing.T) {
	f := newUserFixture(fakeConfig{})
	_, err := f.uc.Register(context.Background(), usecasecontract.RegisterInput{Email: "a@x.com"})
	assert.ErrorIs(t, err, entity.ErrValidation)

	_, err = f.uc.Register(context.Background(), usecasecontract.RegisterInput{Password: "pw"})
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newUserFixture(fakeConfig{})
	ctx := context.Background()
	_, err := f.uc.Register(ctx, usecasecontract.RegisterInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	_, err = f.uc.Register(ctx, usecasecontract.RegisterInput{Email: "a@x.com", Password: "pw2"})
	assert.ErrorIs(t, err, entity.ErrDuplicateEmail)
}

func TestRegister_EmailIsCaseSensitive(t *testing.T) {
	f := newUserFixture(fakeConfig{})
	ctx := context.Background()
	_, err := f.uc.Register(ctx, usecasecontract.RegisterInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)
	_, err = f.uc.Register(ctx, usecasecontract.RegisterInput{Email: "A@x.com", Password: "pw1"})
	assert.NoError(t, err)
}

func TestRegister_ConcurrentSameEmailYieldsOneAccount(t *testing.T) {
	f := newUserFixture(fakeConfig{})
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Register(ctx, usecasecontract.RegisterInput{Email: "race@x.com", Password: "pw"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	created := 0
	for err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, entity.ErrDuplicateEmail)
	}
	assert.Equal(t, 1, created)

	pending, err := f.uc.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestRegister_HashFailure(t *testing.T) {
	f := newUserFixture(fakeConfig{})
	f.uc.hasher = fakeHasher{fail: true}
	_, err := f.uc.Register(context.Background(), usecasecontract.RegisterInput{Email: "a@x.com", Password: "pw"})
	assert.ErrorIs(t, err, entity.ErrExternalService)
}

func TestRegister_StorageFailureOnLookup(t *testing.T) {
	f := newUserFixture(fakeConfig{})
	f.repo.failGet = errors.New("connection refused")
	_, err := f.uc.Register(context.Background(), usecasecontract.RegisterInput{Email: "a@x.com", Password: "pw"})
	assert.ErrorIs(t, err, entity.ErrStorageFailure)
}

func TestLogin_FailureModes(t *testing.T) {
	f := newUserFixture(fakeConfig{})
	ctx := context.Background()
	_, err := f.uc.Register(ctx, usecasecontract.RegisterInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"missing password", "a@x.com", "", entity.ErrValidation},
		{"unknown email", "nobody@x.com", "pw1", entity.ErrNotFound},
		{"wrong password on pending account", "a@x.com", "nope", entity.ErrInvalidCredentials},
		{"right password on pending account", "a@x.com", "pw1", entity.ErrNotApproved},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := f.uc.Login(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLogin_PendingNeverReportsInvalidCredentials(t *testing.T) {
	f := newUserFixture(fakeConfig{})
	ctx := context.Background()
	_, err := f.uc.Register(ctx, usecasecontract.RegisterInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	_, _, err = f.uc.Login(ctx, "a@x.com", "pw1")
	assert.ErrorIs(t, err, entity.ErrNotApproved)
	assert.NotErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestLogin_ApprovedUserGetsToken(t *testing.T) {
	f := newUserFixture(fakeConfig{})
	ctx := context.Background()
	u, err := f.uc.Register(ctx, usecasecontract.RegisterInput{Name: "Ann", Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)
	_, err = f.uc.Approve(ctx, u.ID, entity.UserRoleMember)
	require.NoError(t, err)

	user, token, err := f.uc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := f.jwt.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, entity.UserRoleMember, claims.Role)
	assert.Equal(t, entity.UserSummary{ID: u.ID, Name: "Ann", Email: "a@x.com", Role: entity.UserRoleMember}, user.Summary())
}

func TestApprove_NotFound(t *testing.T) {
	f := newUserFixture(fakeConfig{})
	_, err := f.uc.Approve(context.Background(), "missing", entity.UserRoleMember)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestApprove_RequiresRole(t *testing.T) {
	f := newUserFixture(fakeConfig{})
	_, err := f.uc.Approve(context.Background(), "any", "")
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestApprove_IdempotentForSameRole(t *testing.T) {
	f := newUserFixture(fakeConfig{})
	ctx := context.Background()
	u, err := f.uc.Register(ctx, usecasecontract.RegisterInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	once, err := f.uc.Approve(ctx, u.ID, entity.UserRoleMember)
	require.NoError(t, err)
	twice, err := f.uc.Approve(ctx, u.ID, entity.UserRoleMember)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	assert.Equal(t, entity.UserStatusApproved, twice.Status)
}

func TestApprove_ReapprovalOverwritesRole(t *testing.T) {
	f := newUserFixture(fakeConfig{})
	ctx := context.Background()
	u, err := f.uc.Register(ctx, usecasecontract.RegisterInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	_, err = f.uc.Approve(ctx, u.ID, entity.UserRoleMember)
	require.NoError(t, err)
	updated, err := f.uc.Approve(ctx, u.ID, entity.UserRoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.UserRoleAdmin, updated.Role)
}

func TestApprove_TokensKeepRoleFromIssueTime(t *testing.T) {
	f := newUserFixture(fakeConfig{})
	ctx := context.Background()
	u, err := f.uc.Register(ctx, usecasecontract.RegisterInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	_, err = f.uc.Approve(ctx, u.ID, entity.UserRoleMember)
	require.NoError(t, err)
	_, before, err := f.uc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	_, err = f.uc.Approve(ctx, u.ID, entity.UserRoleAdmin)
	require.NoError(t, err)
	_, after, err := f.uc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	c1, err := f.jwt.ParseAccessToken(before)
	require.NoError(t, err)
	c2, err := f.jwt.ParseAccessToken(after)
	require.NoError(t, err)
	assert.Equal(t, entity.UserRoleMember, c1.Role)
	assert.Equal(t, entity.UserRoleAdmin, c2.Role)
}

func TestApprove_SendsEmailWhenEnabled(t *testing.T) {
	f := newUserFixture(fakeConfig{sendApproval: true})
	ctx := context.Background()
	u, err := f.uc.Register(ctx, usecasecontract.RegisterInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	f.mailer.err = errors.New("smtp down")
	_, err = f.uc.Approve(ctx, u.ID, entity.UserRoleMember)
	require.NoError(t, err, "mail failures must not fail the approval")
	assert.Equal(t, []string{"a@x.com"}, f.mailer.sent)
}

func TestApprove_InvalidatesCache(t *testing.T) {
	f := newUserFixture(fakeConfig{})
	cache := newFakeCache()
	f.uc.SetUserCache(cache)
	ctx := context.Background()
	u, err := f.uc.Register(ctx, usecasecontract.RegisterInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	_, err = f.uc.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Contains(t, cache.users, u.ID)

	_, err = f.uc.Approve(ctx, u.ID, entity.UserRoleMember)
	require.NoError(t, err)
	assert.NotContains(t, cache.users, u.ID)

	got, err := f.uc.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusApproved, got.Status)
}

func TestListPending_OnlyPending(t *testing.T) {
	f := newUserFixture(fakeConfig{})
	ctx := context.Background()
	a, err := f.uc.Register(ctx, usecasecontract.RegisterInput{Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)
	_, err = f.uc.Register(ctx, usecasecontract.RegisterInput{Email: "b@x.com", Password: "pw"})
	require.NoError(t, err)
	_, err = f.uc.Approve(ctx, a.ID, entity.UserRoleMember)
	require.NoError(t, err)

	pending, err := f.uc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "b@x.com", pending[0].Email)
}

func TestUpdateProfile_AllowListedFieldsOnly(t *testing.T) {
	f := newUserFixture(fakeConfig{})
	ctx := context.Background()
	u, err := f.uc.Register(ctx, usecasecontract.RegisterInput{Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)

	name := "New Name"
	bio := "gopher"
	updated, err := f.uc.UpdateProfile(ctx, u.ID, usecasecontract.ProfileUpdate{
		Name:      &name,
		Biography: &bio,
		Skills:    []string{"go", "mongo"},
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "gopher", updated.Biography)
	assert.Equal(t, []string{"go", "mongo"}, updated.Skills)
	assert.Equal(t, entity.UserStatusPending, updated.Status)
	assert.Equal(t, entity.UserRoleUnauthorized, updated.Role)
	assert.Equal(t, "hashed:pw", updated.PasswordHash)
}

func TestUpdateProfile_NotFound(t *testing.T) {
	f := newUserFixture(fakeConfig{})
	name := "x"
	_, err := f.uc.UpdateProfile(context.Background(), "missing", usecasecontract.ProfileUpdate{Name: &name})
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestLoginWithOAuth_RegistersPendingUser(t *testing.T) {
	f := newUserFixture(fakeConfig{})
	ctx := context.Background()

	_, _, err := f.uc.LoginWithOAuth(ctx, "Ann", "a@x.com")
	assert.ErrorIs(t, err, entity.ErrNotApproved)

	pending, err := f.uc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Empty(t, pending[0].PasswordHash)

	_, _, err = f.uc.Login(ctx, "a@x.com", "")
	assert.ErrorIs(t, err, entity.ErrValidation)
	_, _, err = f.uc.Login(ctx, "a@x.com", "guess")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestLoginWithOAuth_ApprovedUserGetsToken(t *testing.T) {
	f := newUserFixture(fakeConfig{})
	ctx := context.Background()
	u, err := f.uc.Register(ctx, usecasecontract.RegisterInput{Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)
	_, err = f.uc.Approve(ctx, u.ID, entity.UserRoleMember)
	require.NoError(t, err)

	user, token, err := f.uc.LoginWithOAuth(ctx, "Ann", "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, user.ID)
	assert.NotEmpty(t, token)
}

func TestLoginWithOAuth_InvalidEmail(t *testing.T) {
	f := newUserFixture(fakeConfig{})
	_, _, err := f.uc.LoginWithOAuth(context.Background(), "Ann", "not-an-email")
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestLoginWithOAuth_LostInsertRaceUsesWinningAccount(t *testing.T) {
	f := newUserFixture(fakeConfig{})
	ctx := context.Background()

	// Another request registers and gets approved between the lookup and the insert.
	f.repo.beforeCreate = func() {
		f.repo.beforeCreate = nil
		require.NoError(t, f.repo.CreateUser(ctx, &entity.User{
			ID:     "winner",
			Email:  "a@x.com",
			Role:   entity.UserRoleMember,
			Status: entity.UserStatusApproved,
		}))
	}

	user, token, err := f.uc.LoginWithOAuth(ctx, "Ann", "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "winner", user.ID)
	assert.NotEmpty(t, token)
	assert.Equal(t, 1, f.metrics.registrations[outcomeDuplicate])
	assert.Zero(t, f.metrics.registrations[outcomeSuccess])
	assert.Equal(t, 1, f.metrics.logins[outcomeSuccess])
}

func TestLoginWithOAuth_LostInsertRaceToPendingAccount(t *testing.T) {
	f := newUserFixture(fakeConfig{})
	ctx := context.Background()
	f.repo.beforeCreate = func() {
		f.repo.beforeCreate = nil
		require.NoError(t, f.repo.CreateUser(ctx, &entity.User{ID: "winner", Email: "a@x.com", Status: entity.UserStatusPending}))
	}

	_, _, err := f.uc.LoginWithOAuth(ctx, "Ann", "a@x.com")
	assert.ErrorIs(t, err, entity.ErrNotApproved)
	assert.Equal(t, 1, f.metrics.registrations[outcomeDuplicate])
}
