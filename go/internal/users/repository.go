package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mcdev12/orderalone/go/internal/apperr"
	"github.com/mcdev12/orderalone/go/internal/models"
	"github.com/mcdev12/orderalone/go/internal/users/db"
)

// uniqueViolation is the Postgres error code for a duplicate key.
const uniqueViolation = "23505"

// Querier defines what the repository needs from the database layer
type Querier interface {
	CreateUser(ctx context.Context, arg db.CreateUserParams) (db.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (db.User, error)
	GetUserByAccountID(ctx context.Context, accountID string) (db.User, error)
}

// Repository implements user data access operations
type Repository struct {
	queries Querier
}

func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

func (r *Repository) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	row, err := r.queries.CreateUser(ctx, db.CreateUserParams{
		ID:           user.ID,
		AccountID:    user.AccountID,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
	})
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: account %s", apperr.ErrConflict, user.AccountID)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return dbUserToModel(row), nil
}

func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row, err := r.queries.GetUser(ctx, id)
	if err != nil {
		return nil, notFound(err, "failed to get user")
	}
	return dbUserToModel(row), nil
}

func (r *Repository) GetUserByAccountID(ctx context.Context, accountID string) (*models.User, error) {
	row, err := r.queries.GetUserByAccountID(ctx, accountID)
	if err != nil {
		return nil, notFound(err, "failed to get user by account id")
	}
	return dbUserToModel(row), nil
}

func notFound(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: user", apperr.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func dbUserToModel(row db.User) *models.User {
	return &models.User{
		ID:           row.ID,
		AccountID:    row.AccountID,
		Name:         row.Name,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
	}
}
