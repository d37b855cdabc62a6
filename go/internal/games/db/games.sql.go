package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const createGame = `-- name: CreateGame :one
INSERT INTO games (id, user_id, menu_id, started_at)
VALUES ($1, $2, $3, $4)
RETURNING id, user_id, menu_id, score, started_at, ended_at
`

type CreateGameParams struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	MenuID    uuid.UUID
	StartedAt time.Time
}

func (q *Queries) CreateGame(ctx context.Context, arg CreateGameParams) (Game, error) {
	row := q.db.QueryRowContext(ctx, createGame, arg.ID, arg.UserID, arg.MenuID, arg.StartedAt)
	var i Game
	err := row.Scan(&i.ID, &i.UserID, &i.MenuID, &i.Score, &i.StartedAt, &i.EndedAt)
	return i, err
}

const getGame = `-- name: GetGame :one
SELECT g.id, g.user_id, g.menu_id, g.score, g.started_at, g.ended_at, u.name AS user_name
FROM games g
LEFT JOIN users u ON u.id = g.user_id
WHERE g.id = $1
`

func (q *Queries) GetGame(ctx context.Context, id uuid.UUID) (GameWithUserRow, error) {
	return scanGameWithUser(q.db.QueryRowContext(ctx, getGame, id))
}

const endGame = `-- name: EndGame :one
UPDATE games g SET ended_at = $2
FROM users u
WHERE g.id = $1 AND g.ended_at IS NULL AND u.id = g.user_id
RETURNING g.id, g.user_id, g.menu_id, g.score, g.started_at, g.ended_at, u.name AS user_name
`

type EndGameParams struct {
	ID      uuid.UUID
	EndedAt time.Time
}

func (q *Queries) EndGame(ctx context.Context, arg EndGameParams) (GameWithUserRow, error) {
	return scanGameWithUser(q.db.QueryRowContext(ctx, endGame, arg.ID, arg.EndedAt))
}

const listGamesByUser = `-- name: ListGamesByUser :many
SELECT g.id, g.user_id, g.menu_id, g.score, g.started_at, g.ended_at, u.name AS user_name
FROM games g
LEFT JOIN users u ON u.id = g.user_id
WHERE g.user_id = $1
ORDER BY g.started_at DESC
LIMIT $2
`

type ListGamesByUserParams struct {
	UserID uuid.UUID
	Limit  int32
}

func (q *Queries) ListGamesByUser(ctx context.Context, arg ListGamesByUserParams) ([]GameWithUserRow, error) {
	rows, err := q.db.QueryContext(ctx, listGamesByUser, arg.UserID, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collectGamesWithUser(rows)
}

const listTopGames = `-- name: ListTopGames :many
SELECT g.id, g.user_id, g.menu_id, g.score, g.started_at, g.ended_at, u.name AS user_name
FROM games g
LEFT JOIN users u ON u.id = g.user_id
ORDER BY g.score DESC, g.started_at
LIMIT $1
`

func (q *Queries) ListTopGames(ctx context.Context, limit int32) ([]GameWithUserRow, error) {
	rows, err := q.db.QueryContext(ctx, listTopGames, limit)
	if err != nil {
		return nil, err
	}
	return collectGamesWithUser(rows)
}

const getBestGameByUser = `-- name: GetBestGameByUser :one
SELECT g.id, g.user_id, g.menu_id, g.score, g.started_at, g.ended_at, u.name AS user_name
FROM games g
LEFT JOIN users u ON u.id = g.user_id
WHERE g.user_id = $1
ORDER BY g.score DESC, g.started_at DESC
LIMIT 1
`

func (q *Queries) GetBestGameByUser(ctx context.Context, userID uuid.UUID) (GameWithUserRow, error) {
	return scanGameWithUser(q.db.QueryRowContext(ctx, getBestGameByUser, userID))
}

const closeStaleGames = `-- name: CloseStaleGames :many
UPDATE games g SET ended_at = $2
FROM users u
WHERE g.ended_at IS NULL AND g.started_at < $1 AND u.id = g.user_id
RETURNING g.id, g.user_id, g.menu_id, g.score, g.started_at, g.ended_at, u.name AS user_name
`

type CloseStaleGamesParams struct {
	StartedBefore time.Time
	EndedAt       time.Time
}

func (q *Queries) CloseStaleGames(ctx context.Context, arg CloseStaleGamesParams) ([]GameWithUserRow, error) {
	rows, err := q.db.QueryContext(ctx, closeStaleGames, arg.StartedBefore, arg.EndedAt)
	if err != nil {
		return nil, err
	}
	return collectGamesWithUser(rows)
}

func scanGameWithUser(row *sql.Row) (GameWithUserRow, error) {
	var i GameWithUserRow
	err := row.Scan(&i.ID, &i.UserID, &i.MenuID, &i.Score, &i.StartedAt, &i.EndedAt, &i.UserName)
	return i, err
}

func collectGamesWithUser(rows *sql.Rows) ([]GameWithUserRow, error) {
	defer rows.Close()
	var items []GameWithUserRow
	for rows.Next() {
		var i GameWithUserRow
		if err := rows.Scan(&i.ID, &i.UserID, &i.MenuID, &i.Score, &i.StartedAt, &i.EndedAt, &i.UserName); err != nil {
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
