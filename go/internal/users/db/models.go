package db

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	AccountID    string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
