package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

type Order struct {
	ID        uuid.UUID
	GameID    uuid.UUID
	MenuID    uuid.UUID
	Category  string
	Item      json.RawMessage
	Toppings  pqtype.NullRawMessage
	IsCorrect bool
	CreatedAt time.Time
}
