package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/orderalone/go/internal/apperr"
	"github.com/mcdev12/orderalone/go/internal/models"
)

// OrdersRepository defines what the app layer needs from the repository
type OrdersRepository interface {
	CreateOrder(ctx context.Context, order models.Order) (*models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	RecordScore(ctx context.Context, order models.Order, userID uuid.UUID, correct bool, points int) (int, error)
	ListCorrectOrders(ctx context.Context, gameID uuid.UUID, limit int) ([]models.Order, error)
}

// GameReader looks up the game an order belongs to
type GameReader interface {
	GetGame(ctx context.Context, id uuid.UUID) (*models.Game, error)
}

// MenuReader looks up the menu orders are drawn from
type MenuReader interface {
	GetMenu(ctx context.Context, id uuid.UUID) (*models.Menu, error)
}

// App handles order generation and scoring
type App struct {
	repo   OrdersRepository
	games  GameReader
	menus  MenuReader
	picker *Picker
}

func NewApp(repo OrdersRepository, games GameReader, menus MenuReader, picker *Picker) *App {
	if picker == nil {
		picker = NewPicker(nil)
	}
	return &App{
		repo:   repo,
		games:  games,
		menus:  menus,
		picker: picker,
	}
}

// NewOrder draws and stores a random order for game from menu.
func (a *App) NewOrder(ctx context.Context, game *models.Game, menu *models.Menu) (*models.Order, error) {
	selection, err := a.picker.Pick(menu)
	if err != nil {
		return nil, err
	}

	level := menu.Level
	description := menu.Description
	return a.repo.CreateOrder(ctx, models.Order{
		ID:              uuid.New(),
		GameID:          game.ID,
		MenuID:          menu.ID,
		MenuName:        menu.Name,
		MenuDescription: &description,
		Level:           &level,
		Selection:       selection,
	})
}

// CreateOrder issues the next order of the caller's running game.
func (a *App) CreateOrder(ctx context.Context, userID, gameID uuid.UUID) (*models.Order, error) {
	game, err := a.ownedGame(ctx, userID, gameID)
	if err != nil {
		return nil, err
	}
	if game.Ended() {
		return nil, fmt.Errorf("%w: game %s has ended", apperr.ErrValidation, gameID)
	}

	menu, err := a.menus.GetMenu(ctx, game.MenuID)
	if err != nil {
		return nil, err
	}
	return a.NewOrder(ctx, game, menu)
}

// ScoreOrder checks an answer. Correct answers add the level stored on the order to the game score.
func (a *App) ScoreOrder(ctx context.Context, userID uuid.UUID, req ScoreRequest) (*models.ScoreResult, error) {
	order, err := a.repo.GetOrder(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order.GameID != req.GameID {
		return nil, fmt.Errorf("%w: order %s is not part of game %s", apperr.ErrValidation, req.OrderID, req.GameID)
	}
	if order.IsCorrect {
		return nil, fmt.Errorf("%w: order %s already scored", apperr.ErrValidation, req.OrderID)
	}

	game, err := a.ownedGame(ctx, userID, req.GameID)
	if err != nil {
		return nil, err
	}
	if game.Ended() {
		return nil, fmt.Errorf("%w: game %s has ended", apperr.ErrValidation, req.GameID)
	}

	level, err := a.orderLevel(ctx, order, game)
	if err != nil {
		return nil, err
	}

	correct := IsCorrect(order.Selection, req)
	score, err := a.repo.RecordScore(ctx, *order, userID, correct, level)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("game_id", game.ID.String()).
		Str("order_id", order.ID.String()).
		Bool("correct", correct).
		Int("score", score).
		Msg("order scored")

	return &models.ScoreResult{
		OrderID: order.ID,
		Correct: correct,
		Expected: models.ExpectedOrder{
			Category:     order.Selection.Category,
			MenuName:     order.Selection.Item.Name,
			ToppingNames: order.Selection.ToppingNames(),
		},
	}, nil
}

// orderLevel is the menu level captured when the order was issued. Orders stored without
// one fall back to the menu's current level.
func (a *App) orderLevel(ctx context.Context, order *models.Order, game *models.Game) (int, error) {
	if order.Level != nil {
		return *order.Level, nil
	}
	menu, err := a.menus.GetMenu(ctx, game.MenuID)
	if err != nil {
		return 0, err
	}
	return menu.Level, nil
}

// ListCorrectOrders lists the correctly answered orders of the caller's game.
func (a *App) ListCorrectOrders(ctx context.Context, userID, gameID uuid.UUID, limit int) ([]models.Order, error) {
	if _, err := a.ownedGame(ctx, userID, gameID); err != nil {
		return nil, err
	}
	return a.repo.ListCorrectOrders(ctx, gameID, limit)
}

func (a *App) ownedGame(ctx context.Context, userID, gameID uuid.UUID) (*models.Game, error) {
	game, err := a.games.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.UserID != userID {
		return nil, fmt.Errorf("%w: game %s belongs to another user", apperr.ErrForbidden, gameID)
	}
	return game, nil
}

// IsCorrect reports whether answer matches the order: same category, same item and the
// same set of non-empty topping names.
func IsCorrect(expected models.OrderSelection, answer ScoreRequest) bool {
	if expected.Category != answer.Category || expected.Item.Name != answer.MenuName {
		return false
	}

	want := toSet(expected.ToppingNames())
	got := toSet(answer.ToppingNames)
	if len(want) != len(got) {
		return false
	}
	for name := range want {
		if _, ok := got[name]; !ok {
			return false
		}
	}
	return true
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		set[name] = struct{}{}
	}
	return set
}
