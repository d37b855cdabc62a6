package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Menu struct {
	ID          uuid.UUID
	Name        string
	Description string
	Level       int32
	Data        json.RawMessage
	CreatedAt   time.Time
}
