// Package dbschema embeds the Postgres schema and applies it at startup.
package dbschema

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var Schema string

// NotifyChannel is the channel the outbox trigger notifies on.
const NotifyChannel = "outbox_events"

// Apply creates every missing table, index and trigger.
func Apply(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
