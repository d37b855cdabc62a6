package models

import (
	"time"

	"github.com/google/uuid"
)

// Game is one timed play session of a user against a menu
type Game struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	MenuID    uuid.UUID  `json:"menu_id"`
	Score     int        `json:"score"`
	StartedAt time.Time  `json:"date"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	UserName  *string    `json:"user_name"`
}

// Ended reports whether the game has been closed.
func (g *Game) Ended() bool {
	return g.EndedAt != nil
}
