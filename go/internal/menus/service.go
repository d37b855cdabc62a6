package menus

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/mcdev12/orderalone/go/internal/auth"
	"github.com/mcdev12/orderalone/go/internal/httputil"
	"github.com/mcdev12/orderalone/go/internal/models"
)

// MenusApp defines what the service layer needs from the menus application
type MenusApp interface {
	CreateMenu(ctx context.Context, req CreateMenuRequest) (*models.Menu, error)
	GetMenu(ctx context.Context, id uuid.UUID) (*models.Menu, error)
	ListMenus(ctx context.Context, limit int) ([]models.Menu, error)
	ListMenuSummaries(ctx context.Context, limit int) ([]models.MenuSummary, error)
	UpdateMenu(ctx context.Context, id uuid.UUID, req UpdateMenuRequest) (*models.Menu, error)
	DeleteMenu(ctx context.Context, id uuid.UUID) error
}

// Service serves the /menu routes
type Service struct {
	app MenusApp
}

func NewService(app MenusApp) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts the menu endpoints behind the access-token middleware.
func (s *Service) RegisterRoutes(mux *http.ServeMux, issuer *auth.Issuer) {
	mux.Handle("POST /menu", issuer.Protect(s.CreateMenu))
	mux.Handle("POST /menu/{$}", issuer.Protect(s.CreateMenu))
	mux.Handle("GET /menu", issuer.Protect(s.ListMenus))
	mux.Handle("GET /menu/{$}", issuer.Protect(s.ListMenus))
	mux.Handle("GET /menu/summary", issuer.Protect(s.ListMenuSummaries))
	mux.Handle("GET /menu/{id}", issuer.Protect(s.GetMenu))
	mux.Handle("PUT /menu/{id}", issuer.Protect(s.UpdateMenu))
	mux.Handle("DELETE /menu/{id}", issuer.Protect(s.DeleteMenu))
}

func (s *Service) CreateMenu(w http.ResponseWriter, r *http.Request) {
	var req CreateMenuRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	menu, err := s.app.CreateMenu(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, menu)
}

func (s *Service) ListMenus(w http.ResponseWriter, r *http.Request) {
	limit, err := httputil.ParseLimit(r, DefaultListLimit, MaxListLimit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	menus, err := s.app.ListMenus(r.Context(), limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, menus)
}

func (s *Service) ListMenuSummaries(w http.ResponseWriter, r *http.Request) {
	limit, err := httputil.ParseLimit(r, DefaultListLimit, MaxListLimit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	summaries, err := s.app.ListMenuSummaries(r.Context(), limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summaries)
}

func (s *Service) GetMenu(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.ParseID(r.PathValue("id"), "menu id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	menu, err := s.app.GetMenu(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, menu)
}

func (s *Service) UpdateMenu(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.ParseID(r.PathValue("id"), "menu id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req UpdateMenuRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	menu, err := s.app.UpdateMenu(r.Context(), id, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, menu)
}

func (s *Service) DeleteMenu(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.ParseID(r.PathValue("id"), "menu id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := s.app.DeleteMenu(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, DeleteResponse{Message: "Menu deleted"})
}
