package users

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/mcdev12/orderalone/go/internal/auth"
	"github.com/mcdev12/orderalone/go/internal/httputil"
	"github.com/mcdev12/orderalone/go/internal/models"
)

const tokenTypeBearer = "bearer"

// UsersApp defines what the service layer needs from the users application
type UsersApp interface {
	SignUp(ctx context.Context, req SignUpRequest) (*models.User, auth.TokenPair, error)
	Login(ctx context.Context, req LoginRequest) (auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	AccessMinutes() int
}

// Service serves the /user routes
type Service struct {
	app UsersApp
}

func NewService(app UsersApp) *Service {
	return &Service{
		app: app,
	}
}

// RegisterRoutes mounts the user endpoints. Only /user/me needs a token.
func (s *Service) RegisterRoutes(mux *http.ServeMux, issuer *auth.Issuer) {
	mux.HandleFunc("POST /user/signup", s.SignUp)
	mux.HandleFunc("POST /user/login", s.Login)
	mux.HandleFunc("POST /user/refresh", s.Refresh)
	mux.Handle("GET /user/me", issuer.Protect(s.Me))
}

func (s *Service) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	user, pair, err := s.app.SignUp(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, SignUpResponse{
		User:          toProfile(user),
		TokenResponse: s.tokens(pair),
	})
}

func (s *Service) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	pair, err := s.app.Login(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, s.tokens(pair))
}

func (s *Service) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	access, err := s.app.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken:      access,
		TokenType:        tokenTypeBearer,
		ExpiresInMinutes: s.app.AccessMinutes(),
	})
}

func (s *Service) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	user, err := s.app.GetUser(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toProfile(user))
}

func (s *Service) tokens(pair auth.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:      pair.AccessToken,
		RefreshToken:     pair.RefreshToken,
		TokenType:        tokenTypeBearer,
		ExpiresInMinutes: s.app.AccessMinutes(),
	}
}

func toProfile(user *models.User) Profile {
	return Profile{ID: user.ID, AccountID: user.AccountID, Name: user.Name}
}
