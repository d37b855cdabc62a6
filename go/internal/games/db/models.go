package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Game struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	MenuID    uuid.UUID
	Score     int32
	StartedAt time.Time
	EndedAt   sql.NullTime
}

// GameWithUserRow is a game joined with its player's name.
type GameWithUserRow struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	MenuID    uuid.UUID
	Score     int32
	StartedAt time.Time
	EndedAt   sql.NullTime
	UserName  sql.NullString
}
