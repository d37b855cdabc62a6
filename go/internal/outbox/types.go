package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types written to the outbox and published as orderalone.games.<type>.
const (
	EventGameStarted = "game.started"
	EventOrderScored = "order.scored"
	EventGameEnded   = "game.ended"
)

// Event is one outbox row
type Event struct {
	ID        uuid.UUID       `json:"id"`
	GameID    uuid.UUID       `json:"game_id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	SentAt    *time.Time      `json:"sent_at,omitempty"`
}

type GameStartedPayload struct {
	GameID    uuid.UUID `json:"game_id"`
	UserID    uuid.UUID `json:"user_id"`
	MenuID    uuid.UUID `json:"menu_id"`
	StartedAt time.Time `json:"started_at"`
}

type OrderScoredPayload struct {
	GameID  uuid.UUID `json:"game_id"`
	OrderID uuid.UUID `json:"order_id"`
	UserID  uuid.UUID `json:"user_id"`
	Correct bool      `json:"correct"`
	Score   int       `json:"score"`
}

// GameEndedPayload feeds the live ranking. Abandoned is set when the sweeper closed the game.
type GameEndedPayload struct {
	GameID    uuid.UUID `json:"game_id"`
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name"`
	MenuID    uuid.UUID `json:"menu_id"`
	Score     int       `json:"score"`
	EndedAt   time.Time `json:"ended_at"`
	Abandoned bool      `json:"abandoned,omitempty"`
}
