package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/orderalone/go/internal/apperr"
	"github.com/mcdev12/orderalone/go/internal/auth"
	"github.com/mcdev12/orderalone/go/internal/models"
)

// UsersRepository defines what the app layer needs from the repository
type UsersRepository interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByAccountID(ctx context.Context, accountID string) (*models.User, error)
}

// App handles signup, login and token refresh
type App struct {
	repo   UsersRepository
	issuer *auth.Issuer
}

func NewApp(repo UsersRepository, issuer *auth.Issuer) *App {
	return &App{
		repo:   repo,
		issuer: issuer,
	}
}

// SignUp creates the account and returns it with a fresh token pair.
func (a *App) SignUp(ctx context.Context, req SignUpRequest) (*models.User, auth.TokenPair, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.AccountID = strings.TrimSpace(req.AccountID)
	if req.Name == "" || req.AccountID == "" || req.Password == "" {
		return nil, auth.TokenPair{}, fmt.Errorf("%w: name, account_id and password are required", apperr.ErrValidation)
	}

	if _, err := a.repo.GetUserByAccountID(ctx, req.AccountID); err == nil {
		return nil, auth.TokenPair{}, fmt.Errorf("%w: account %s", apperr.ErrConflict, req.AccountID)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, auth.TokenPair{}, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}

	user, err := a.repo.CreateUser(ctx, models.User{
		ID:           uuid.New(),
		AccountID:    req.AccountID,
		Name:         req.Name,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, auth.TokenPair{}, err
	}

	pair, err := a.issuer.IssuePair(user.ID)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}

	log.Info().Str("user_id", user.ID.String()).Str("account_id", user.AccountID).Msg("user signed up")
	return user, pair, nil
}

// Login checks the password of an existing account.
func (a *App) Login(ctx context.Context, req LoginRequest) (auth.TokenPair, error) {
	if req.AccountID == "" || req.Password == "" {
		return auth.TokenPair{}, fmt.Errorf("%w: account_id and password are required", apperr.ErrValidation)
	}

	user, err := a.repo.GetUserByAccountID(ctx, req.AccountID)
	if err != nil {
		return auth.TokenPair{}, err
	}
	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return auth.TokenPair{}, err
	}

	return a.issuer.IssuePair(user.ID)
}

// Refresh trades a refresh token for a new access token.
func (a *App) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := a.issuer.Parse(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return "", err
	}
	if _, err := a.repo.GetUser(ctx, userID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", fmt.Errorf("%w: unknown user", apperr.ErrInvalidToken)
		}
		return "", err
	}
	return a.issuer.Issue(userID, auth.TokenTypeAccess)
}

func (a *App) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return a.repo.GetUser(ctx, id)
}

// AccessMinutes is the advertised access token lifetime.
func (a *App) AccessMinutes() int {
	return int(a.issuer.AccessTTL().Minutes())
}
