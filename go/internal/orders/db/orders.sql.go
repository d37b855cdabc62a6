package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

const createOrder = `-- name: CreateOrder :one
INSERT INTO orders (id, game_id, menu_id, category, item, toppings)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, game_id, menu_id, category, item, toppings, is_correct, created_at
`

type CreateOrderParams struct {
	ID       uuid.UUID
	GameID   uuid.UUID
	MenuID   uuid.UUID
	Category string
	Item     json.RawMessage
	Toppings pqtype.NullRawMessage
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	row := q.db.QueryRowContext(ctx, createOrder, arg.ID, arg.GameID, arg.MenuID, arg.Category, arg.Item, arg.Toppings)
	var i Order
	err := row.Scan(&i.ID, &i.GameID, &i.MenuID, &i.Category, &i.Item, &i.Toppings, &i.IsCorrect, &i.CreatedAt)
	return i, err
}

const getOrder = `-- name: GetOrder :one
SELECT id, game_id, menu_id, category, item, toppings, is_correct, created_at FROM orders
WHERE id = $1
`

func (q *Queries) GetOrder(ctx context.Context, id uuid.UUID) (Order, error) {
	row := q.db.QueryRowContext(ctx, getOrder, id)
	var i Order
	err := row.Scan(&i.ID, &i.GameID, &i.MenuID, &i.Category, &i.Item, &i.Toppings, &i.IsCorrect, &i.CreatedAt)
	return i, err
}

const markOrderCorrect = `-- name: MarkOrderCorrect :execrows
UPDATE orders SET is_correct = TRUE
WHERE id = $1 AND is_correct = FALSE
`

func (q *Queries) MarkOrderCorrect(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.ExecContext(ctx, markOrderCorrect, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteOrder = `-- name: DeleteOrder :exec
DELETE FROM orders WHERE id = $1
`

func (q *Queries) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, deleteOrder, id)
	return err
}

const addGameScore = `-- name: AddGameScore :one
UPDATE games SET score = score + $2
WHERE id = $1
RETURNING score
`

type AddGameScoreParams struct {
	ID     uuid.UUID
	Points int32
}

func (q *Queries) AddGameScore(ctx context.Context, arg AddGameScoreParams) (int32, error) {
	row := q.db.QueryRowContext(ctx, addGameScore, arg.ID, arg.Points)
	var score int32
	err := row.Scan(&score)
	return score, err
}

const listCorrectOrdersByGame = `-- name: ListCorrectOrdersByGame :many
SELECT o.id, o.game_id, o.menu_id, o.category, o.item, o.toppings, o.is_correct, o.created_at,
       m.name AS menu_name, m.description AS menu_description, m.level
FROM orders o
JOIN menus m ON m.id = o.menu_id
WHERE o.game_id = $1 AND o.is_correct
ORDER BY o.created_at DESC
LIMIT $2
`

type ListCorrectOrdersByGameParams struct {
	GameID uuid.UUID
	Limit  int32
}

type ListCorrectOrdersByGameRow struct {
	ID              uuid.UUID
	GameID          uuid.UUID
	MenuID          uuid.UUID
	Category        string
	Item            json.RawMessage
	Toppings        pqtype.NullRawMessage
	IsCorrect       bool
	CreatedAt       time.Time
	MenuName        string
	MenuDescription string
	Level           int32
}

func (q *Queries) ListCorrectOrdersByGame(ctx context.Context, arg ListCorrectOrdersByGameParams) ([]ListCorrectOrdersByGameRow, error) {
	rows, err := q.db.QueryContext(ctx, listCorrectOrdersByGame, arg.GameID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListCorrectOrdersByGameRow
	for rows.Next() {
		var i ListCorrectOrdersByGameRow
		if err := rows.Scan(
			&i.ID, &i.GameID, &i.MenuID, &i.Category, &i.Item, &i.Toppings, &i.IsCorrect, &i.CreatedAt,
			&i.MenuName, &i.MenuDescription, &i.Level,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
