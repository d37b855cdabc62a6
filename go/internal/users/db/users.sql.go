package db

import (
	"context"

	"github.com/google/uuid"
)

const createUser = `-- name: CreateUser :one
INSERT INTO users (id, account_id, name, password_hash)
VALUES ($1, $2, $3, $4)
RETURNING id, account_id, name, password_hash, created_at
`

type CreateUserParams struct {
	ID           uuid.UUID
	AccountID    string
	Name         string
	PasswordHash string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRowContext(ctx, createUser, arg.ID, arg.AccountID, arg.Name, arg.PasswordHash)
	var i User
	err := row.Scan(&i.ID, &i.AccountID, &i.Name, &i.PasswordHash, &i.CreatedAt)
	return i, err
}

const getUser = `-- name: GetUser :one
SELECT id, account_id, name, password_hash, created_at FROM users
WHERE id = $1
`

func (q *Queries) GetUser(ctx context.Context, id uuid.UUID) (User, error) {
	row := q.db.QueryRowContext(ctx, getUser, id)
	var i User
	err := row.Scan(&i.ID, &i.AccountID, &i.Name, &i.PasswordHash, &i.CreatedAt)
	return i, err
}

const getUserByAccountID = `-- name: GetUserByAccountID :one
SELECT id, account_id, name, password_hash, created_at FROM users
WHERE account_id = $1
`

func (q *Queries) GetUserByAccountID(ctx context.Context, accountID string) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByAccountID, accountID)
	var i User
	err := row.Scan(&i.ID, &i.AccountID, &i.Name, &i.PasswordHash, &i.CreatedAt)
	return i, err
}
