package games

import (
	"github.com/google/uuid"

	"github.com/mcdev12/orderalone/go/internal/models"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
	DefaultTopLimit  = 10
	MaxTopLimit      = 100
)

type StartGameRequest struct {
	MenuID uuid.UUID `json:"menu_id"`
}

// StartGameResponse carries the first order of the new game
type StartGameResponse struct {
	Order *models.Order `json:"order"`
}

type EndGameRequest struct {
	GameID uuid.UUID `json:"game_id"`
}

// GameScore is the final result of an ended game
type GameScore struct {
	GameID uuid.UUID `json:"game_id"`
	Score  int       `json:"score"`
}
