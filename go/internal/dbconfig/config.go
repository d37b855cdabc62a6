// Package dbconfig describes how the API server, relay and seeder reach Postgres.
package dbconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	_ "github.com/lib/pq"
)

// Config is the Postgres section of the server config. Every field can be overridden
// with a DB_* environment variable.
type Config struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	SSLMode         string        `yaml:"sslmode"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`

	// ApplicationName shows up in pg_stat_activity
	ApplicationName string `yaml:"application_name"`
}

var sslModes = map[string]bool{
	"disable": true, "allow": true, "prefer": true,
	"require": true, "verify-ca": true, "verify-full": true,
}

func Default() Config {
	return Config{
		Host:            "localhost",
		Port:            5432,
		User:            "postgres",
		Password:        "postgres",
		Name:            "orderalone",
		SSLMode:         "disable",
		ConnectTimeout:  5 * time.Second,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
	}
}

// FromEnv is the defaults plus DB_* overrides, for processes without a config file.
func FromEnv(applicationName string) (Config, error) {
	cfg := Default()
	cfg.ApplicationName = applicationName
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) ApplyEnv() error {
	c.Host = getEnv("DB_HOST", c.Host)
	c.User = getEnv("DB_USER", c.User)
	c.Password = getEnv("DB_PASSWORD", c.Password)
	c.Name = getEnv("DB_NAME", c.Name)
	c.SSLMode = getEnv("DB_SSLMODE", c.SSLMode)

	var errs []error
	var err error
	if c.Port, err = getEnvAsInt("DB_PORT", c.Port); err != nil {
		errs = append(errs, err)
	}
	if c.MaxOpenConns, err = getEnvAsInt("DB_MAX_OPEN_CONNS", c.MaxOpenConns); err != nil {
		errs = append(errs, err)
	}
	if c.MaxIdleConns, err = getEnvAsInt("DB_MAX_IDLE_CONNS", c.MaxIdleConns); err != nil {
		errs = append(errs, err)
	}
	if c.ConnectTimeout, err = getEnvAsDuration("DB_CONNECT_TIMEOUT", c.ConnectTimeout); err != nil {
		errs = append(errs, err)
	}
	if c.ConnMaxLifetime, err = getEnvAsDuration("DB_CONN_MAX_LIFETIME", c.ConnMaxLifetime); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c Config) Validate() error {
	var errs []error
	if c.Host == "" {
		errs = append(errs, errors.New("database.host (DB_HOST) is required"))
	}
	if c.Name == "" {
		errs = append(errs, errors.New("database.name (DB_NAME) is required"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("database.port must be 1..65535, got %d", c.Port))
	}
	if !sslModes[c.SSLMode] {
		errs = append(errs, fmt.Errorf("database.sslmode %q is not a Postgres sslmode", c.SSLMode))
	}
	if c.MaxOpenConns > 0 && c.MaxIdleConns > c.MaxOpenConns {
		errs = append(errs, fmt.Errorf("database.max_idle_conns (%d) exceeds max_open_conns (%d)", c.MaxIdleConns, c.MaxOpenConns))
	}
	return errors.Join(errs...)
}

// DSN renders a postgres:// URL that both lib/pq and pgx accept. Credentials are escaped.
func (c Config) DSN() string {
	return c.url(nil).String()
}

// PoolDSN is DSN plus the pgxpool sizing parameters.
func (c Config) PoolDSN() string {
	extra := url.Values{}
	if c.MaxOpenConns > 0 {
		extra.Set("pool_max_conns", strconv.Itoa(c.MaxOpenConns))
	}
	if c.ConnMaxLifetime > 0 {
		extra.Set("pool_max_conn_lifetime", c.ConnMaxLifetime.String())
	}
	return c.url(extra).String()
}

func (c Config) url(extra url.Values) *url.URL {
	query := url.Values{}
	query.Set("sslmode", c.SSLMode)
	if c.ConnectTimeout > 0 {
		seconds := int(c.ConnectTimeout.Round(time.Second) / time.Second)
		if seconds < 1 {
			seconds = 1
		}
		query.Set("connect_timeout", strconv.Itoa(seconds))
	}
	if c.ApplicationName != "" {
		query.Set("application_name", c.ApplicationName)
	}
	for key, values := range extra {
		query[key] = values
	}

	return &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Name,
		RawQuery: query.Encode(),
	}
}

// Open connects through lib/pq, applies the pool limits and pings the server.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database %s at %s:%d: %w", cfg.Name, cfg.Host, cfg.Port, err)
	}
	return db, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
