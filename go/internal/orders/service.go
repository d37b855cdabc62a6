package orders

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/mcdev12/orderalone/go/internal/auth"
	"github.com/mcdev12/orderalone/go/internal/httputil"
	"github.com/mcdev12/orderalone/go/internal/models"
)

// OrdersApp defines what the service layer needs from the orders application
type OrdersApp interface {
	CreateOrder(ctx context.Context, userID, gameID uuid.UUID) (*models.Order, error)
	ScoreOrder(ctx context.Context, userID uuid.UUID, req ScoreRequest) (*models.ScoreResult, error)
	ListCorrectOrders(ctx context.Context, userID, gameID uuid.UUID, limit int) ([]models.Order, error)
}

// Service serves the /order routes
type Service struct {
	app OrdersApp
}

func NewService(app OrdersApp) *Service {
	return &Service{app: app}
}

func (s *Service) RegisterRoutes(mux *http.ServeMux, issuer *auth.Issuer) {
	mux.Handle("POST /order", issuer.Protect(s.CreateOrder))
	mux.Handle("POST /order/{$}", issuer.Protect(s.CreateOrder))
	mux.Handle("POST /order/score", issuer.Protect(s.ScoreOrder))
	mux.Handle("GET /order/game/{game_id}", issuer.Protect(s.ListByGame))
}

func (s *Service) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	userID, _ := auth.UserIDFromContext(r.Context())

	order, err := s.app.CreateOrder(r.Context(), userID, req.GameID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, order)
}

func (s *Service) ScoreOrder(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	userID, _ := auth.UserIDFromContext(r.Context())

	result, err := s.app.ScoreOrder(r.Context(), userID, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (s *Service) ListByGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := httputil.ParseID(r.PathValue("game_id"), "game id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	limit, err := httputil.ParseLimit(r, DefaultListLimit, MaxListLimit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	userID, _ := auth.UserIDFromContext(r.Context())

	orders, err := s.app.ListCorrectOrders(r.Context(), userID, gameID, limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, orders)
}
