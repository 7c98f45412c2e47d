package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultMaxConns = 4
	pingTimeout     = 5 * time.Second
	applicationName = "guild-settings-bot"
)

// DB is the pgx pool behind the settings repositories
type DB struct {
	*pgxpool.Pool
}

// NewConnection opens the pool and waits for the server to answer a ping
func NewConnection(ctx context.Context, databaseURL string) (*DB, error) {
	config, err := poolConfig(databaseURL)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// poolConfig parses databaseURL and fills in session defaults.
// pool_max_conns and application_name given in the URL are kept.
func poolConfig(databaseURL string) (*pgxpool.Config, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	if !hasQueryParam(databaseURL, "pool_max_conns") {
		config.MaxConns = defaultMaxConns
	}

	params := config.ConnConfig.RuntimeParams
	params["timezone"] = "UTC"
	if params["application_name"] == "" {
		params["application_name"] = applicationName
	}
	return config, nil
}

// Close closes the pool
func (db *DB) Close() {
	db.Pool.Close()
}
