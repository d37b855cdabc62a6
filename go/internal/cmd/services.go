package main

import (
	"database/sql"

	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/orderalone/go/internal/auth"
	"github.com/mcdev12/orderalone/go/internal/games"
	"github.com/mcdev12/orderalone/go/internal/menus"
	menusdb "github.com/mcdev12/orderalone/go/internal/menus/db"
	"github.com/mcdev12/orderalone/go/internal/orders"
	"github.com/mcdev12/orderalone/go/internal/users"
	usersdb "github.com/mcdev12/orderalone/go/internal/users/db"
)

type Services struct {
	Issuer   *auth.Issuer
	Users    *users.Service
	Menus    *menus.Service
	Games    *games.Service
	Orders   *orders.Service
	GamesApp *games.App
}

func setupServices(database *sql.DB, config *Config, clock clockwork.Clock) *Services {
	// Database layer → Repository layer → App layer → Service layer
	issuer := auth.NewIssuer(config.Auth.JWTSecret, config.Auth.AccessTokenTTL, config.Auth.RefreshTokenTTL, clock)

	// Users
	userRepo := users.NewRepository(usersdb.New(database))
	userApp := users.NewApp(userRepo, issuer)

	// Menus
	menuRepo := menus.NewRepository(menusdb.New(database))
	menuApp := menus.NewApp(menuRepo)

	// Orders read games straight from the games repository, so the games app can take
	// the orders app as its order issuer.
	gameRepo := games.NewRepository(database)
	orderApp := orders.NewApp(orders.NewRepository(database), gameRepo, menuApp, nil)
	gameApp := games.NewApp(gameRepo, menuApp, orderApp, clock)

	return &Services{
		Issuer:   issuer,
		Users:    users.NewService(userApp),
		Menus:    menus.NewService(menuApp),
		Games:    games.NewService(gameApp),
		Orders:   orders.NewService(orderApp),
		GamesApp: gameApp,
	}
}
