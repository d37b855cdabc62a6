package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	oa "github.com/mcdev12/orderalone/go/clients/orderalone_client"
	"github.com/mcdev12/orderalone/go/internal/tokenstore"
)

type Config struct {
	APIBase    string
	TokenStore string
	TokenFile  string
	Timeout    time.Duration
	Redis      RedisConfig
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

func loadConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	timeout, err := time.ParseDuration(getEnv("KIOSK_TIMEOUT", "30s"))
	if err != nil {
		timeout = 30 * time.Second
	}

	return Config{
		APIBase:    getEnv("KIOSK_API_BASE", oa.DefaultBaseURL),
		TokenStore: getEnv("KIOSK_TOKEN_STORE", "file"),
		TokenFile:  getEnv("KIOSK_TOKEN_FILE", filepath.Join(home, ".orderalone", "tokens.yaml")),
		Timeout:    timeout,
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Prefix:   getEnv("REDIS_PREFIX", "orderalone:kiosk:"),
		},
	}
}

// openTokenStore returns the configured store and a close func
func openTokenStore(cfg Config) (tokenstore.Store, func() error, error) {
	switch cfg.TokenStore {
	case "memory":
		return tokenstore.NewMemory(), func() error { return nil }, nil
	case "file":
		return tokenstore.NewFile(cfg.TokenFile), func() error { return nil }, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return tokenstore.NewRedis(client, cfg.Redis.Prefix), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown token store %q", cfg.TokenStore)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
