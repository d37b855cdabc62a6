package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a kiosk player account
type User struct {
	ID           uuid.UUID `json:"id"`
	AccountID    string    `json:"account_id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
