package orders

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/orderalone/go/internal/apperr"
	"github.com/mcdev12/orderalone/go/internal/models"
	"github.com/mcdev12/orderalone/go/internal/orders/db"
	"github.com/mcdev12/orderalone/go/internal/outbox"
	outboxdb "github.com/mcdev12/orderalone/go/internal/outbox/db"
	"github.com/mcdev12/orderalone/go/internal/sqlutil"
)

// txQueries is everything a scoring transaction writes through.
type txQueries struct {
	orders *db.Queries
	outbox *outbox.Repository
}

// Repository implements order data access operations
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

func (r *Repository) CreateOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	item, err := json.Marshal(order.Selection.Item)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order item: %w", err)
	}
	toppings, err := sqlutil.ToNullJSON(order.Selection.Topping)
	if err != nil {
		return nil, err
	}

	row, err := r.queries.CreateOrder(ctx, db.CreateOrderParams{
		ID:       order.ID,
		GameID:   order.GameID,
		MenuID:   order.MenuID,
		Category: order.Selection.Category,
		Item:     item,
		Toppings: toppings,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	created, err := dbOrderToModel(row)
	if err != nil {
		return nil, err
	}
	created.MenuName = order.MenuName
	created.MenuDescription = order.MenuDescription
	created.Level = order.Level
	return created, nil
}

func (r *Repository) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	row, err := r.queries.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: order %s", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return dbOrderToModel(row)
}

// RecordScore applies a scored answer in one transaction. A correct order is kept and the
// game gains points; a wrong order is deleted. The order.scored event is written alongside.
// It returns the game's new score.
func (r *Repository) RecordScore(ctx context.Context, order models.Order, userID uuid.UUID, correct bool, points int) (int, error) {
	var score int32
	err := sqlutil.Run(ctx, r.db,
		func(tx *sql.Tx) txQueries {
			return txQueries{orders: r.queries.WithTx(tx), outbox: outbox.NewRepository(outboxdb.New(tx))}
		},
		func(q txQueries) error {
			if correct {
				n, err := q.orders.MarkOrderCorrect(ctx, order.ID)
				if err != nil {
					return fmt.Errorf("failed to mark order correct: %w", err)
				}
				if n == 0 {
					return fmt.Errorf("%w: order %s already scored", apperr.ErrValidation, order.ID)
				}
			} else {
				if err := q.orders.DeleteOrder(ctx, order.ID); err != nil {
					return fmt.Errorf("failed to delete order: %w", err)
				}
				points = 0
			}

			var err error
			score, err = q.orders.AddGameScore(ctx, db.AddGameScoreParams{ID: order.GameID, Points: int32(points)})
			if err != nil {
				return fmt.Errorf("failed to update game score: %w", err)
			}

			return q.outbox.Append(ctx, order.GameID, outbox.EventOrderScored, outbox.OrderScoredPayload{
				GameID:  order.GameID,
				OrderID: order.ID,
				UserID:  userID,
				Correct: correct,
				Score:   int(score),
			})
		},
	)
	if err != nil {
		return 0, err
	}
	return int(score), nil
}

func (r *Repository) ListCorrectOrders(ctx context.Context, gameID uuid.UUID, limit int) ([]models.Order, error) {
	rows, err := r.queries.ListCorrectOrdersByGame(ctx, db.ListCorrectOrdersByGameParams{
		GameID: gameID,
		Limit:  int32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]models.Order, 0, len(rows))
	for _, row := range rows {
		order, err := dbOrderToModel(db.Order{
			ID:        row.ID,
			GameID:    row.GameID,
			MenuID:    row.MenuID,
			Category:  row.Category,
			Item:      row.Item,
			Toppings:  row.Toppings,
			IsCorrect: row.IsCorrect,
			CreatedAt: row.CreatedAt,
		})
		if err != nil {
			return nil, err
		}
		level := int(row.Level)
		description := row.MenuDescription
		order.MenuName = row.MenuName
		order.MenuDescription = &description
		order.Level = &level
		orders = append(orders, *order)
	}
	return orders, nil
}

func dbOrderToModel(row db.Order) (*models.Order, error) {
	order := &models.Order{
		ID:        row.ID,
		GameID:    row.GameID,
		MenuID:    row.MenuID,
		IsCorrect: row.IsCorrect,
		CreatedAt: row.CreatedAt,
		Selection: models.OrderSelection{Category: row.Category},
	}
	if err := json.Unmarshal(row.Item, &order.Selection.Item); err != nil {
		return nil, fmt.Errorf("failed to decode order %s item: %w", row.ID, err)
	}
	if err := sqlutil.FromNullJSON(row.Toppings, &order.Selection.Topping); err != nil {
		return nil, err
	}
	return order, nil
}
