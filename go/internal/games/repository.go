package games

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/orderalone/go/internal/apperr"
	"github.com/mcdev12/orderalone/go/internal/games/db"
	"github.com/mcdev12/orderalone/go/internal/models"
	"github.com/mcdev12/orderalone/go/internal/outbox"
	outboxdb "github.com/mcdev12/orderalone/go/internal/outbox/db"
	"github.com/mcdev12/orderalone/go/internal/sqlutil"
)

type txQueries struct {
	games  *db.Queries
	outbox *outbox.Repository
}

// Repository implements game data access operations
type Repository struct {
	db      *sql.DB
	queries *db.Queries
}

func NewRepository(database *sql.DB) *Repository {
	return &Repository{
		db:      database,
		queries: db.New(database),
	}
}

func (r *Repository) inTx(ctx context.Context, fn func(q txQueries) error) error {
	return sqlutil.Run(ctx, r.db,
		func(tx *sql.Tx) txQueries {
			return txQueries{games: r.queries.WithTx(tx), outbox: outbox.NewRepository(outboxdb.New(tx))}
		},
		fn,
	)
}

// CreateGame stores a new game and its game.started event.
func (r *Repository) CreateGame(ctx context.Context, game models.Game) (*models.Game, error) {
	var created db.Game
	err := r.inTx(ctx, func(q txQueries) error {
		var err error
		created, err = q.games.CreateGame(ctx, db.CreateGameParams{
			ID:        game.ID,
			UserID:    game.UserID,
			MenuID:    game.MenuID,
			StartedAt: game.StartedAt,
		})
		if err != nil {
			return fmt.Errorf("failed to create game: %w", err)
		}
		return q.outbox.Append(ctx, created.ID, outbox.EventGameStarted, outbox.GameStartedPayload{
			GameID:    created.ID,
			UserID:    created.UserID,
			MenuID:    created.MenuID,
			StartedAt: created.StartedAt,
		})
	})
	if err != nil {
		return nil, err
	}

	return dbGameToModel(db.GameWithUserRow{
		ID:        created.ID,
		UserID:    created.UserID,
		MenuID:    created.MenuID,
		Score:     created.Score,
		StartedAt: created.StartedAt,
		EndedAt:   created.EndedAt,
	}), nil
}

func (r *Repository) GetGame(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	row, err := r.queries.GetGame(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: game %s", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return dbGameToModel(row), nil
}

// EndGame sets ended_at on an open game and writes its game.ended event. A game that is
// already closed gives apperr.ErrConflict.
func (r *Repository) EndGame(ctx context.Context, id uuid.UUID, endedAt time.Time) (*models.Game, error) {
	var game *models.Game
	err := r.inTx(ctx, func(q txQueries) error {
		row, err := q.games.EndGame(ctx, db.EndGameParams{ID: id, EndedAt: endedAt})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: game %s is not open", apperr.ErrConflict, id)
			}
			return fmt.Errorf("failed to end game: %w", err)
		}
		game = dbGameToModel(row)
		return q.outbox.Append(ctx, game.ID, outbox.EventGameEnded, endedPayload(game, false))
	})
	if err != nil {
		return nil, err
	}
	return game, nil
}

// CloseStale ends every open game started before cutoff, one game.ended event each.
func (r *Repository) CloseStale(ctx context.Context, cutoff, endedAt time.Time) ([]models.Game, error) {
	var closed []models.Game
	err := r.inTx(ctx, func(q txQueries) error {
		rows, err := q.games.CloseStaleGames(ctx, db.CloseStaleGamesParams{
			StartedBefore: cutoff,
			EndedAt:       endedAt,
		})
		if err != nil {
			return fmt.Errorf("failed to close stale games: %w", err)
		}
		closed = make([]models.Game, 0, len(rows))
		for _, row := range rows {
			game := dbGameToModel(row)
			if err := q.outbox.Append(ctx, game.ID, outbox.EventGameEnded, endedPayload(game, true)); err != nil {
				return err
			}
			closed = append(closed, *game)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return closed, nil
}

func (r *Repository) ListGamesByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Game, error) {
	rows, err := r.queries.ListGamesByUser(ctx, db.ListGamesByUserParams{UserID: userID, Limit: int32(limit)})
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return dbGamesToModels(rows), nil
}

func (r *Repository) ListTopGames(ctx context.Context, limit int) ([]models.Game, error) {
	rows, err := r.queries.ListTopGames(ctx, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list top games: %w", err)
	}
	return dbGamesToModels(rows), nil
}

// BestGameByUser returns nil when the user has no games.
func (r *Repository) BestGameByUser(ctx context.Context, userID uuid.UUID) (*models.Game, error) {
	row, err := r.queries.GetBestGameByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get best game: %w", err)
	}
	return dbGameToModel(row), nil
}

func endedPayload(game *models.Game, abandoned bool) outbox.GameEndedPayload {
	payload := outbox.GameEndedPayload{
		GameID:    game.ID,
		UserID:    game.UserID,
		MenuID:    game.MenuID,
		Score:     game.Score,
		Abandoned: abandoned,
	}
	if game.UserName != nil {
		payload.UserName = *game.UserName
	}
	if game.EndedAt != nil {
		payload.EndedAt = *game.EndedAt
	}
	return payload
}

func dbGamesToModels(rows []db.GameWithUserRow) []models.Game {
	games := make([]models.Game, len(rows))
	for i, row := range rows {
		games[i] = *dbGameToModel(row)
	}
	return games
}

func dbGameToModel(row db.GameWithUserRow) *models.Game {
	return &models.Game{
		ID:        row.ID,
		UserID:    row.UserID,
		MenuID:    row.MenuID,
		Score:     int(row.Score),
		StartedAt: row.StartedAt,
		EndedAt:   sqlutil.FromSqlTime(row.EndedAt),
		UserName:  sqlutil.FromSqlStringPtr(row.UserName),
	}
}
