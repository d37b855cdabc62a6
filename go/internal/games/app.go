package games

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/orderalone/go/internal/apperr"
	"github.com/mcdev12/orderalone/go/internal/models"
)

// GamesRepository defines what the app layer needs from the repository
type GamesRepository interface {
	CreateGame(ctx context.Context, game models.Game) (*models.Game, error)
	GetGame(ctx context.Context, id uuid.UUID) (*models.Game, error)
	EndGame(ctx context.Context, id uuid.UUID, endedAt time.Time) (*models.Game, error)
	CloseStale(ctx context.Context, cutoff, endedAt time.Time) ([]models.Game, error)
	ListGamesByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Game, error)
	ListTopGames(ctx context.Context, limit int) ([]models.Game, error)
	BestGameByUser(ctx context.Context, userID uuid.UUID) (*models.Game, error)
}

// MenuReader looks up the menu a game is played on
type MenuReader interface {
	GetMenu(ctx context.Context, id uuid.UUID) (*models.Menu, error)
}

// OrderIssuer draws orders for a game
type OrderIssuer interface {
	NewOrder(ctx context.Context, game *models.Game, menu *models.Menu) (*models.Order, error)
}

// App handles the game lifecycle and score records
type App struct {
	repo   GamesRepository
	menus  MenuReader
	orders OrderIssuer
	clock  clockwork.Clock
}

func NewApp(repo GamesRepository, menus MenuReader, orders OrderIssuer, clock clockwork.Clock) *App {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &App{
		repo:   repo,
		menus:  menus,
		orders: orders,
		clock:  clock,
	}
}

// StartGame opens a game on menuID for the user and returns its first order.
func (a *App) StartGame(ctx context.Context, userID, menuID uuid.UUID) (*models.Order, error) {
	if menuID == uuid.Nil {
		return nil, fmt.Errorf("%w: menu_id is required", apperr.ErrValidation)
	}
	menu, err := a.menus.GetMenu(ctx, menuID)
	if err != nil {
		return nil, err
	}

	game, err := a.repo.CreateGame(ctx, models.Game{
		ID:        uuid.New(),
		UserID:    userID,
		MenuID:    menu.ID,
		StartedAt: a.clock.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	order, err := a.orders.NewOrder(ctx, game, menu)
	if err != nil {
		// the game stays open with no order; the sweeper closes it
		return nil, err
	}

	log.Info().
		Str("game_id", game.ID.String()).
		Str("user_id", userID.String()).
		Str("menu_id", menu.ID.String()).
		Msg("game started")
	return order, nil
}

// EndGame closes the caller's game and reports its score. Ending a closed game again
// returns the recorded score without touching it.
func (a *App) EndGame(ctx context.Context, userID, gameID uuid.UUID) (*GameScore, error) {
	game, err := a.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.UserID != userID {
		return nil, fmt.Errorf("%w: game %s belongs to another user", apperr.ErrForbidden, gameID)
	}
	if game.Ended() {
		return &GameScore{GameID: game.ID, Score: game.Score}, nil
	}

	ended, err := a.repo.EndGame(ctx, gameID, a.clock.Now().UTC())
	switch {
	case errors.Is(err, apperr.ErrConflict):
		// closed concurrently, by the sweeper or a second request
		if ended, err = a.GetGame(ctx, gameID); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		log.Info().
			Str("game_id", ended.ID.String()).
			Int("score", ended.Score).
			Msg("game ended")
	}
	return &GameScore{GameID: ended.ID, Score: ended.Score}, nil
}

func (a *App) GetGame(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	return a.repo.GetGame(ctx, id)
}

func (a *App) ListGames(ctx context.Context, userID uuid.UUID, limit int) ([]models.Game, error) {
	return a.repo.ListGamesByUser(ctx, userID, limit)
}

func (a *App) TopGames(ctx context.Context, limit int) ([]models.Game, error) {
	return a.repo.ListTopGames(ctx, limit)
}

// BestGame returns nil when the user has not played yet.
func (a *App) BestGame(ctx context.Context, userID uuid.UUID) (*models.Game, error) {
	return a.repo.BestGameByUser(ctx, userID)
}

// CloseAbandoned ends open games older than maxAge and returns how many were closed.
func (a *App) CloseAbandoned(ctx context.Context, maxAge time.Duration) (int, error) {
	now := a.clock.Now().UTC()
	closed, err := a.repo.CloseStale(ctx, now.Add(-maxAge), now)
	if err != nil {
		return 0, err
	}
	for _, game := range closed {
		log.Info().
			Str("game_id", game.ID.String()).
			Int("score", game.Score).
			Msg("abandoned game closed")
	}
	return len(closed), nil
}
