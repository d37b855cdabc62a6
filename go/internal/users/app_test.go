package users

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/orderalone/go/internal/apperr"
	"github.com/mcdev12/orderalone/go/internal/auth"
	"github.com/mcdev12/orderalone/go/internal/models"
)

type fakeRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[uuid.UUID]models.User)}
}

func (f *fakeRepo) CreateUser(_ context.Context, user models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.AccountID == user.AccountID {
			return nil, apperr.ErrConflict
		}
	}
	f.users[user.ID] = user
	return &user, nil
}

func (f *fakeRepo) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &u, nil
}

func (f *fakeRepo) GetUserByAccountID(_ context.Context, accountID string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.AccountID == accountID {
			return &u, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func newTestApp() (*App, *auth.Issuer, *fakeRepo) {
	repo := newFakeRepo()
	issuer := auth.NewIssuer("secret", 0, 0, clockwork.NewFakeClock())
	return NewApp(repo, issuer), issuer, repo
}

func TestSignUpAndLogin(t *testing.T) {
	app, issuer, _ := newTestApp()
	ctx := context.Background()

	user, pair, err := app.SignUp(ctx, SignUpRequest{Name: " Kiosk ", AccountID: "kiosk_user", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "Kiosk", user.Name)
	assert.NotEqual(t, "pw", user.PasswordHash)

	subject, err := issuer.Parse(pair.AccessToken, auth.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, user.ID, subject)

	loginPair, err := app.Login(ctx, LoginRequest{AccountID: "kiosk_user", Password: "pw"})
	require.NoError(t, err)
	assert.NotEmpty(t, loginPair.RefreshToken)
}

func TestSignUp_Errors(t *testing.T) {
	app, _, _ := newTestApp()
	ctx := context.Background()

	_, _, err := app.SignUp(ctx, SignUpRequest{AccountID: "a", Password: "pw"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, _, err = app.SignUp(ctx, SignUpRequest{Name: "A", AccountID: "a", Password: "pw"})
	require.NoError(t, err)

	_, _, err = app.SignUp(ctx, SignUpRequest{Name: "B", AccountID: "a", Password: "pw2"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestLogin_Errors(t *testing.T) {
	app, _, _ := newTestApp()
	ctx := context.Background()
	_, _, err := app.SignUp(ctx, SignUpRequest{Name: "A", AccountID: "a", Password: "pw"})
	require.NoError(t, err)

	_, err = app.Login(ctx, LoginRequest{AccountID: "nobody", Password: "pw"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = app.Login(ctx, LoginRequest{AccountID: "a", Password: "wrong"})
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	_, err = app.Login(ctx, LoginRequest{AccountID: "a"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestRefresh(t *testing.T) {
	app, issuer, repo := newTestApp()
	ctx := context.Background()
	user, pair, err := app.SignUp(ctx, SignUpRequest{Name: "A", AccountID: "a", Password: "pw"})
	require.NoError(t, err)

	access, err := app.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	subject, err := issuer.Parse(access, auth.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, user.ID, subject)

	_, err = app.Refresh(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken, "an access token is not a refresh token")

	repo.mu.Lock()
	delete(repo.users, user.ID)
	repo.mu.Unlock()
	_, err = app.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}
