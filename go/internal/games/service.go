package games

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/mcdev12/orderalone/go/internal/auth"
	"github.com/mcdev12/orderalone/go/internal/httputil"
	"github.com/mcdev12/orderalone/go/internal/models"
)

// GamesApp defines what the service layer needs from the games application
type GamesApp interface {
	StartGame(ctx context.Context, userID, menuID uuid.UUID) (*models.Order, error)
	EndGame(ctx context.Context, userID, gameID uuid.UUID) (*GameScore, error)
	ListGames(ctx context.Context, userID uuid.UUID, limit int) ([]models.Game, error)
	TopGames(ctx context.Context, limit int) ([]models.Game, error)
	BestGame(ctx context.Context, userID uuid.UUID) (*models.Game, error)
}

// Service serves the /game routes
type Service struct {
	app GamesApp
}

func NewService(app GamesApp) *Service {
	return &Service{app: app}
}

func (s *Service) RegisterRoutes(mux *http.ServeMux, issuer *auth.Issuer) {
	mux.Handle("POST /game/start", issuer.Protect(s.StartGame))
	mux.Handle("POST /game/end", issuer.Protect(s.EndGame))
	mux.Handle("GET /game", issuer.Protect(s.ListGames))
	mux.Handle("GET /game/{$}", issuer.Protect(s.ListGames))
	mux.Handle("GET /game/top", issuer.Protect(s.TopGames))
	mux.Handle("GET /game/best", issuer.Protect(s.BestGame))
}

func (s *Service) StartGame(w http.ResponseWriter, r *http.Request) {
	var req StartGameRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	userID, _ := auth.UserIDFromContext(r.Context())

	order, err := s.app.StartGame(r.Context(), userID, req.MenuID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, StartGameResponse{Order: order})
}

func (s *Service) EndGame(w http.ResponseWriter, r *http.Request) {
	var req EndGameRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	userID, _ := auth.UserIDFromContext(r.Context())

	score, err := s.app.EndGame(r.Context(), userID, req.GameID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, score)
}

func (s *Service) ListGames(w http.ResponseWriter, r *http.Request) {
	limit, err := httputil.ParseLimit(r, DefaultListLimit, MaxListLimit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	userID, _ := auth.UserIDFromContext(r.Context())

	games, err := s.app.ListGames(r.Context(), userID, limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, games)
}

func (s *Service) TopGames(w http.ResponseWriter, r *http.Request) {
	limit, err := httputil.ParseLimit(r, DefaultTopLimit, MaxTopLimit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	games, err := s.app.TopGames(r.Context(), limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, games)
}

// BestGame writes null when the caller has no games.
func (s *Service) BestGame(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	game, err := s.app.BestGame(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, game)
}
