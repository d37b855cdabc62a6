package menus

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/orderalone/go/internal/apperr"
	"github.com/mcdev12/orderalone/go/internal/models"
)

type fakeRepo struct {
	mu    sync.Mutex
	menus map[uuid.UUID]models.Menu
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{menus: make(map[uuid.UUID]models.Menu)}
}

func (f *fakeRepo) CreateMenu(_ context.Context, menu models.Menu) (*models.Menu, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.menus {
		if m.Name == menu.Name {
			return nil, apperr.ErrConflict
		}
	}
	f.menus[menu.ID] = menu
	return &menu, nil
}

func (f *fakeRepo) GetMenu(_ context.Context, id uuid.UUID) (*models.Menu, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.menus[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &m, nil
}

func (f *fakeRepo) ListMenus(_ context.Context, limit int) ([]models.Menu, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Menu, 0, len(f.menus))
	for _, m := range f.menus {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepo) ListMenuSummaries(ctx context.Context, limit int) ([]models.MenuSummary, error) {
	menus, _ := f.ListMenus(ctx, limit)
	out := make([]models.MenuSummary, 0, len(menus))
	for _, m := range menus {
		out = append(out, models.MenuSummary{ID: m.ID, Name: m.Name, Description: m.Description})
	}
	return out, nil
}

func (f *fakeRepo) UpdateMenu(_ context.Context, id uuid.UUID, req UpdateMenuRequest) (*models.Menu, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.menus[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.Level != nil {
		m.Level = *req.Level
	}
	if req.Data != nil {
		m.Data = *req.Data
	}
	f.menus[id] = m
	return &m, nil
}

func (f *fakeRepo) DeleteMenu(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.menus[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(f.menus, id)
	return nil
}

func burgerSet() CreateMenuRequest {
	return CreateMenuRequest{
		Name:        "Set A",
		Description: "burgers",
		Level:       2,
		Data: []models.Category{{
			Kategorie: "Burger",
			Menus:     []models.MenuItem{{Name: "Buff Burger"}},
			Toping:    []models.ToppingGroup{{Name: "Extra", Items: []models.MenuItem{{Name: "Cheese"}}}},
		}},
	}
}

func TestCreateMenu(t *testing.T) {
	app := NewApp(newFakeRepo())
	ctx := context.Background()

	menu, err := app.CreateMenu(ctx, burgerSet())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, menu.ID)
	assert.Equal(t, 2, menu.Level)

	_, err = app.CreateMenu(ctx, burgerSet())
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = app.CreateMenu(ctx, CreateMenuRequest{Name: "  "})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = app.CreateMenu(ctx, CreateMenuRequest{Name: "Bad", Data: []models.Category{{}}})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	defaulted, err := app.CreateMenu(ctx, CreateMenuRequest{Name: "Plain"})
	require.NoError(t, err)
	assert.Equal(t, 1, defaulted.Level)
}

func TestUpdateMenu(t *testing.T) {
	app := NewApp(newFakeRepo())
	ctx := context.Background()
	menu, err := app.CreateMenu(ctx, burgerSet())
	require.NoError(t, err)

	_, err = app.UpdateMenu(ctx, menu.ID, UpdateMenuRequest{})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	zero := 0
	_, err = app.UpdateMenu(ctx, menu.ID, UpdateMenuRequest{Level: &zero})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	desc := "bigger burgers"
	updated, err := app.UpdateMenu(ctx, menu.ID, UpdateMenuRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "bigger burgers", updated.Description)
	assert.Equal(t, "Set A", updated.Name)

	_, err = app.UpdateMenu(ctx, uuid.New(), UpdateMenuRequest{Description: &desc})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteMenu(t *testing.T) {
	app := NewApp(newFakeRepo())
	ctx := context.Background()
	menu, err := app.CreateMenu(ctx, burgerSet())
	require.NoError(t, err)

	require.NoError(t, app.DeleteMenu(ctx, menu.ID))
	assert.ErrorIs(t, app.DeleteMenu(ctx, menu.ID), apperr.ErrNotFound)
}
