package menus

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mcdev12/orderalone/go/internal/apperr"
	"github.com/mcdev12/orderalone/go/internal/menus/db"
	"github.com/mcdev12/orderalone/go/internal/models"
	"github.com/mcdev12/orderalone/go/internal/sqlutil"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	CreateMenu(ctx context.Context, arg db.CreateMenuParams) (db.Menu, error)
	GetMenu(ctx context.Context, id uuid.UUID) (db.Menu, error)
	ListMenus(ctx context.Context, limit int32) ([]db.Menu, error)
	ListMenuSummaries(ctx context.Context, limit int32) ([]db.ListMenuSummariesRow, error)
	UpdateMenu(ctx context.Context, arg db.UpdateMenuParams) (db.Menu, error)
	DeleteMenu(ctx context.Context, id uuid.UUID) (int64, error)
}

// Repository implements menu data access operations
type Repository struct {
	queries Querier
}

func NewRepository(querier Querier) *Repository {
	return &Repository{queries: querier}
}

func (r *Repository) CreateMenu(ctx context.Context, menu models.Menu) (*models.Menu, error) {
	categories := menu.Data
	if categories == nil {
		categories = []models.Category{}
	}
	data, err := json.Marshal(categories)
	if err != nil {
		return nil, fmt.Errorf("failed to encode menu data: %w", err)
	}

	row, err := r.queries.CreateMenu(ctx, db.CreateMenuParams{
		ID:          menu.ID,
		Name:        menu.Name,
		Description: menu.Description,
		Level:       int32(menu.Level),
		Data:        data,
	})
	if err != nil {
		return nil, mapWriteError(err, menu.Name)
	}
	return dbMenuToModel(row)
}

func (r *Repository) GetMenu(ctx context.Context, id uuid.UUID) (*models.Menu, error) {
	row, err := r.queries.GetMenu(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: menu %s", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get menu: %w", err)
	}
	return dbMenuToModel(row)
}

func (r *Repository) ListMenus(ctx context.Context, limit int) ([]models.Menu, error) {
	rows, err := r.queries.ListMenus(ctx, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}

	menus := make([]models.Menu, 0, len(rows))
	for _, row := range rows {
		menu, err := dbMenuToModel(row)
		if err != nil {
			return nil, err
		}
		menus = append(menus, *menu)
	}
	return menus, nil
}

func (r *Repository) ListMenuSummaries(ctx context.Context, limit int) ([]models.MenuSummary, error) {
	rows, err := r.queries.ListMenuSummaries(ctx, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list menu summaries: %w", err)
	}

	summaries := make([]models.MenuSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, models.MenuSummary{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
		})
	}
	return summaries, nil
}

func (r *Repository) UpdateMenu(ctx context.Context, id uuid.UUID, req UpdateMenuRequest) (*models.Menu, error) {
	params := db.UpdateMenuParams{
		ID:          id,
		Name:        sqlutil.ToSqlString(req.Name),
		Description: sqlutil.ToSqlString(req.Description),
		Level:       sqlutil.ToSqlInt32(req.Level),
	}
	if req.Data != nil {
		data, err := sqlutil.ToNullJSON(*req.Data)
		if err != nil {
			return nil, err
		}
		params.Data = data
	}

	row, err := r.queries.UpdateMenu(ctx, params)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: menu %s", apperr.ErrNotFound, id)
		}
		name := ""
		if req.Name != nil {
			name = *req.Name
		}
		return nil, mapWriteError(err, name)
	}
	return dbMenuToModel(row)
}

func (r *Repository) DeleteMenu(ctx context.Context, id uuid.UUID) error {
	n, err := r.queries.DeleteMenu(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: menu %s", apperr.ErrNotFound, id)
	}
	return nil
}

func mapWriteError(err error, name string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%w: menu %q", apperr.ErrConflict, name)
	}
	return fmt.Errorf("failed to write menu: %w", err)
}

func dbMenuToModel(row db.Menu) (*models.Menu, error) {
	menu := &models.Menu{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Level:       int(row.Level),
		CreatedAt:   row.CreatedAt,
	}
	if len(row.Data) > 0 {
		if err := json.Unmarshal(row.Data, &menu.Data); err != nil {
			return nil, fmt.Errorf("failed to decode menu %s data: %w", row.ID, err)
		}
	}
	return menu, nil
}
