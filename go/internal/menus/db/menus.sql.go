package db

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

const createMenu = `-- name: CreateMenu :one
INSERT INTO menus (id, name, description, level, data)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, name, description, level, data, created_at
`

type CreateMenuParams struct {
	ID          uuid.UUID
	Name        string
	Description string
	Level       int32
	Data        json.RawMessage
}

func (q *Queries) CreateMenu(ctx context.Context, arg CreateMenuParams) (Menu, error) {
	row := q.db.QueryRowContext(ctx, createMenu, arg.ID, arg.Name, arg.Description, arg.Level, arg.Data)
	var i Menu
	err := row.Scan(&i.ID, &i.Name, &i.Description, &i.Level, &i.Data, &i.CreatedAt)
	return i, err
}

const getMenu = `-- name: GetMenu :one
SELECT id, name, description, level, data, created_at FROM menus
WHERE id = $1
`

func (q *Queries) GetMenu(ctx context.Context, id uuid.UUID) (Menu, error) {
	row := q.db.QueryRowContext(ctx, getMenu, id)
	var i Menu
	err := row.Scan(&i.ID, &i.Name, &i.Description, &i.Level, &i.Data, &i.CreatedAt)
	return i, err
}

const listMenus = `-- name: ListMenus :many
SELECT id, name, description, level, data, created_at FROM menus
ORDER BY level, name
LIMIT $1
`

func (q *Queries) ListMenus(ctx context.Context, limit int32) ([]Menu, error) {
	rows, err := q.db.QueryContext(ctx, listMenus, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Menu
	for rows.Next() {
		var i Menu
		if err := rows.Scan(&i.ID, &i.Name, &i.Description, &i.Level, &i.Data, &i.CreatedAt); err != nil {
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

const listMenuSummaries = `-- name: ListMenuSummaries :many
SELECT id, name, description FROM menus
ORDER BY level, name
LIMIT $1
`

type ListMenuSummariesRow struct {
	ID          uuid.UUID
	Name        string
	Description string
}

func (q *Queries) ListMenuSummaries(ctx context.Context, limit int32) ([]ListMenuSummariesRow, error) {
	rows, err := q.db.QueryContext(ctx, listMenuSummaries, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListMenuSummariesRow
	for rows.Next() {
		var i ListMenuSummariesRow
		if err := rows.Scan(&i.ID, &i.Name, &i.Description); err != nil {
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

const updateMenu = `-- name: UpdateMenu :one
UPDATE menus SET
    name        = COALESCE($2, name),
    description = COALESCE($3, description),
    level       = COALESCE($4, level),
    data        = COALESCE($5, data)
WHERE id = $1
RETURNING id, name, description, level, data, created_at
`

type UpdateMenuParams struct {
	ID          uuid.UUID
	Name        sql.NullString
	Description sql.NullString
	Level       sql.NullInt32
	Data        pqtype.NullRawMessage
}

func (q *Queries) UpdateMenu(ctx context.Context, arg UpdateMenuParams) (Menu, error) {
	row := q.db.QueryRowContext(ctx, updateMenu, arg.ID, arg.Name, arg.Description, arg.Level, arg.Data)
	var i Menu
	err := row.Scan(&i.ID, &i.Name, &i.Description, &i.Level, &i.Data, &i.CreatedAt)
	return i, err
}

const deleteMenu = `-- name: DeleteMenu :execrows
DELETE FROM menus WHERE id = $1
`

func (q *Queries) DeleteMenu(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteMenu, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
