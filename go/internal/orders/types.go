package orders

import "github.com/google/uuid"

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// CreateOrderRequest asks for the next order of a running game
type CreateOrderRequest struct {
	GameID uuid.UUID `json:"game_id"`
}

// ScoreRequest is the player's answer to an order
type ScoreRequest struct {
	OrderID      uuid.UUID `json:"order_id"`
	GameID       uuid.UUID `json:"game_id"`
	Category     string    `json:"category"`
	MenuName     string    `json:"menu_name"`
	ToppingNames []string  `json:"topping_names"`
}
