package menus

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/orderalone/go/internal/apperr"
	"github.com/mcdev12/orderalone/go/internal/models"
)

// MenusRepository defines what the app layer needs from the repository
type MenusRepository interface {
	CreateMenu(ctx context.Context, menu models.Menu) (*models.Menu, error)
	GetMenu(ctx context.Context, id uuid.UUID) (*models.Menu, error)
	ListMenus(ctx context.Context, limit int) ([]models.Menu, error)
	ListMenuSummaries(ctx context.Context, limit int) ([]models.MenuSummary, error)
	UpdateMenu(ctx context.Context, id uuid.UUID, req UpdateMenuRequest) (*models.Menu, error)
	DeleteMenu(ctx context.Context, id uuid.UUID) error
}

// App handles menu business logic
type App struct {
	repo MenusRepository
}

func NewApp(repo MenusRepository) *App {
	return &App{repo: repo}
}

func (a *App) CreateMenu(ctx context.Context, req CreateMenuRequest) (*models.Menu, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", apperr.ErrValidation)
	}
	if req.Level == 0 {
		req.Level = 1
	}
	if err := validateMenu(req.Level, req.Data); err != nil {
		return nil, err
	}

	menu, err := a.repo.CreateMenu(ctx, models.Menu{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Level:       req.Level,
		Data:        req.Data,
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("menu_id", menu.ID.String()).Str("name", menu.Name).Msg("menu created")
	return menu, nil
}

func (a *App) GetMenu(ctx context.Context, id uuid.UUID) (*models.Menu, error) {
	return a.repo.GetMenu(ctx, id)
}

func (a *App) ListMenus(ctx context.Context, limit int) ([]models.Menu, error) {
	return a.repo.ListMenus(ctx, limit)
}

func (a *App) ListMenuSummaries(ctx context.Context, limit int) ([]models.MenuSummary, error) {
	return a.repo.ListMenuSummaries(ctx, limit)
}

// UpdateMenu applies a partial update. At least one field must be set.
func (a *App) UpdateMenu(ctx context.Context, id uuid.UUID, req UpdateMenuRequest) (*models.Menu, error) {
	if req.empty() {
		return nil, fmt.Errorf("%w: nothing to update", apperr.ErrValidation)
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperr.ErrValidation)
	}

	level := 1
	if req.Level != nil {
		level = *req.Level
	}
	var data []models.Category
	if req.Data != nil {
		data = *req.Data
	}
	if err := validateMenu(level, data); err != nil {
		return nil, err
	}

	return a.repo.UpdateMenu(ctx, id, req)
}

func (a *App) DeleteMenu(ctx context.Context, id uuid.UUID) error {
	if err := a.repo.DeleteMenu(ctx, id); err != nil {
		return err
	}
	log.Info().Str("menu_id", id.String()).Msg("menu deleted")
	return nil
}

func validateMenu(level int, data []models.Category) error {
	if level < 1 {
		return fmt.Errorf("%w: level must be positive", apperr.ErrValidation)
	}
	for _, category := range data {
		if strings.TrimSpace(category.Kategorie) == "" {
			return fmt.Errorf("%w: every category needs a name", apperr.ErrValidation)
		}
	}
	return nil
}
