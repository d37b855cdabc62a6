package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	oa "github.com/mcdev12/orderalone/go/clients/orderalone_client"
	"github.com/mcdev12/orderalone/go/internal/kiosk"
	"github.com/mcdev12/orderalone/go/internal/tokenstore"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "warn"))
	if err != nil {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)

	cfg := loadConfig()

	store, closeStore, err := openTokenStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open token store")
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Error().Err(err).Msg("close token store")
		}
	}()

	tokens := tokenstore.NewTokens(store)
	client := oa.NewOrderAloneClient(cfg.APIBase, tokens)
	client.SetTimeout(cfg.Timeout)

	view := newTerminal(os.Stdout)
	ctrl := kiosk.NewController(client, tokens, kiosk.WithOnChange(view.onChange))
	defer ctrl.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Str("api", cfg.APIBase).Str("token_store", cfg.TokenStore).Msg("kiosk starting")

	if ctrl.IsAuthenticated() {
		_ = ctrl.Bootstrap(ctx)
	}
	view.printHelp()
	view.render(ctrl.Snapshot())

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		view.prompt()
		select {
		case <-ctx.Done():
			log.Info().Msg("shutdown signal received")
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if quit := view.dispatch(ctx, ctrl, line); quit {
				return
			}
		}
	}
}
