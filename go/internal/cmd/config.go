package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mcdev12/orderalone/go/internal/dbconfig"
)

type Config struct {
	Server struct {
		Port        string   `yaml:"port"`
		CORSOrigins []string `yaml:"cors_origins"`
		Traces      string   `yaml:"traces"` // stdout or none
	} `yaml:"server"`
	Auth struct {
		JWTSecret       string        `yaml:"jwt_secret"`
		AccessTokenTTL  time.Duration `yaml:"access_token_ttl"`
		RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl"`
	} `yaml:"auth"`
	Game struct {
		Seconds int `yaml:"seconds"`
	} `yaml:"game"`
	Sweeper struct {
		Interval time.Duration `yaml:"interval"`
	} `yaml:"sweeper"`
	Database dbconfig.Config `yaml:"database"`
}

func defaultConfig() *Config {
	var config Config
	config.Server.Port = "8080"
	config.Server.CORSOrigins = []string{"*"}
	config.Server.Traces = "none"
	config.Auth.AccessTokenTTL = 60 * time.Minute
	config.Auth.RefreshTokenTTL = 7 * 24 * time.Hour
	config.Game.Seconds = 60
	config.Sweeper.Interval = time.Minute
	config.Database = dbconfig.Default()
	config.Database.ApplicationName = "orderalone-api"
	return &config
}

// loadConfig reads the YAML file at path over the defaults, then applies environment
// overrides. An empty path skips the file.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyEnv() error {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.Traces = getEnv("OTEL_TRACES", c.Server.Traces)
	c.Auth.JWTSecret = getEnv("JWT_SECRET", c.Auth.JWTSecret)
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.Server.CORSOrigins = strings.Split(origins, ",")
	}

	var err error
	if c.Auth.AccessTokenTTL, err = getEnvAsDuration("ACCESS_TOKEN_TTL", c.Auth.AccessTokenTTL); err != nil {
		return err
	}
	if c.Auth.RefreshTokenTTL, err = getEnvAsDuration("REFRESH_TOKEN_TTL", c.Auth.RefreshTokenTTL); err != nil {
		return err
	}
	if c.Sweeper.Interval, err = getEnvAsDuration("SWEEP_INTERVAL", c.Sweeper.Interval); err != nil {
		return err
	}
	c.Game.Seconds = getEnvAsInt("GAME_SECONDS", c.Game.Seconds)
	return c.Database.ApplyEnv()
}

func (c *Config) validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret (JWT_SECRET) is required"))
	}
	if c.Game.Seconds <= 0 {
		errs = append(errs, fmt.Errorf("game.seconds must be positive, got %d", c.Game.Seconds))
	}
	if c.Sweeper.Interval <= 0 {
		errs = append(errs, fmt.Errorf("sweeper.interval must be positive, got %s", c.Sweeper.Interval))
	}
	switch c.Server.Traces {
	case "stdout", "none", "":
	default:
		errs = append(errs, fmt.Errorf("server.traces must be stdout or none, got %q", c.Server.Traces))
	}
	if err := c.Database.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// GameLength is how long one round lasts.
func (c *Config) GameLength() time.Duration {
	return time.Duration(c.Game.Seconds) * time.Second
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

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
