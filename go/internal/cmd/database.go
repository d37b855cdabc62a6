package main

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/orderalone/go/internal/dbconfig"
	"github.com/mcdev12/orderalone/go/internal/dbschema"
)

func setupDatabase(ctx context.Context, cfg dbconfig.Config) (*sql.DB, error) {
	database, err := dbconfig.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := dbschema.Apply(ctx, database); err != nil {
		database.Close()
		return nil, err
	}

	log.Info().
		Str("user", cfg.User).
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Name).
		Int("max_open_conns", cfg.MaxOpenConns).
		Msg("connected to database")
	return database, nil
}
