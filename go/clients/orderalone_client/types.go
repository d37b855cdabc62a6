package orderalone_client

import (
	"time"

	"github.com/mcdev12/orderalone/go/internal/models"
)

// Ids are opaque strings on the kiosk side.

type LoginRequest struct {
	AccountID string `json:"account_id"`
	Password  string `json:"password"`
}

type SignUpRequest struct {
	Name      string `json:"name"`
	AccountID string `json:"account_id"`
	Password  string `json:"password"`
}

// TokenResponse is returned by login, signup and refresh. RefreshToken is empty on refresh.
type TokenResponse struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token,omitempty"`
	TokenType        string `json:"token_type"`
	ExpiresInMinutes int    `json:"expires_in_minutes"`
}

type Profile struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	AccountID string `json:"account_id"`
}

type MenuSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Menu is the category/item/topping tree of one menu
type Menu struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Level       int               `json:"level"`
	Data        []models.Category `json:"data"`
}

// MenuUpdate is a partial menu change
type MenuUpdate struct {
	Name        *string            `json:"name,omitempty"`
	Description *string            `json:"description,omitempty"`
	Level       *int               `json:"level,omitempty"`
	Data        *[]models.Category `json:"data,omitempty"`
}

// Order is the current guess target. Its selection stays opaque to the kiosk until scored.
type Order struct {
	ID        string                `json:"id"`
	GameID    string                `json:"game_id"`
	MenuID    string                `json:"menu_id"`
	Selection models.OrderSelection `json:"selection"`
}

type StartGameResponse struct {
	Order Order `json:"order"`
}

type GameScore struct {
	GameID string `json:"game_id"`
	Score  int    `json:"score"`
}

type ScoreRequest struct {
	OrderID      string   `json:"order_id"`
	GameID       string   `json:"game_id"`
	Category     string   `json:"category"`
	MenuName     string   `json:"menu_name"`
	ToppingNames []string `json:"topping_names"`
}

type Expected struct {
	Category     string   `json:"category"`
	MenuName     string   `json:"menu_name"`
	ToppingNames []string `json:"topping_names"`
}

type ScoreResult struct {
	OrderID  string    `json:"order_id"`
	Correct  bool      `json:"correct"`
	Expected *Expected `json:"expected,omitempty"`
}

// GameRecord is one row of the ranking, history or best-score lists
type GameRecord struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	MenuID   string    `json:"menu_id"`
	Score    int       `json:"score"`
	Date     time.Time `json:"date"`
	UserName string    `json:"user_name"`
}
