package models

import (
	"time"

	"github.com/google/uuid"
)

// SelectedTopping is one topping picked for an order.
type SelectedTopping struct {
	Group string   `json:"group"`
	Item  MenuItem `json:"item"`
}

// OrderSelection is what the customer ordered. Topping is nil when no topping was picked.
type OrderSelection struct {
	Category string            `json:"category"`
	Item     MenuItem          `json:"item"`
	Topping  []SelectedTopping `json:"topping"`
}

// ToppingNames returns the non-empty topping item names of the selection
func (s OrderSelection) ToppingNames() []string {
	names := make([]string, 0, len(s.Topping))
	for _, t := range s.Topping {
		if t.Item.Name != "" {
			names = append(names, t.Item.Name)
		}
	}
	return names
}

// Order is a guess target inside a game
type Order struct {
	ID              uuid.UUID      `json:"id"`
	GameID          uuid.UUID      `json:"game_id"`
	MenuID          uuid.UUID      `json:"menu_id"`
	MenuName        string         `json:"menu_name"`
	MenuDescription *string        `json:"menu_description,omitempty"`
	Level           *int           `json:"level,omitempty"`
	Selection       OrderSelection `json:"selection"`
	IsCorrect       bool           `json:"is_correct"`
	CreatedAt       time.Time      `json:"created_at"`
}

// ScoreResult is the outcome of checking an answer against an order.
type ScoreResult struct {
	OrderID  uuid.UUID     `json:"order_id"`
	Correct  bool          `json:"correct"`
	Expected ExpectedOrder `json:"expected"`
}

// ExpectedOrder reveals the right answer of a scored order.
type ExpectedOrder struct {
	Category     string   `json:"category"`
	MenuName     string   `json:"menu_name"`
	ToppingNames []string `json:"topping_names"`
}
