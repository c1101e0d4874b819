package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"brew-assistant/internal/common/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Connect opens a Postgres connection and pings it, retrying while the
// database is still coming up.
func Connect(ctx context.Context, cfg config.DB) (*sql.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database)

	const (
		maxRetries = 10
		retryDelay = 2 * time.Second
		pingTTL    = 5 * time.Second
	)

	var (
		conn *sql.DB
		err  error
	)
	for i := 1; i <= maxRetries; i++ {
		conn, err = sql.Open("pgx", dsn)
		if err == nil {
			pctx, cancel := context.WithTimeout(ctx, pingTTL)
			err = conn.PingContext(pctx)
			cancel()
			if err == nil {
				return conn, nil
			}
			_ = conn.Close()
		}

		select {
		case <-time.After(retryDelay):
		case <-ctx.Done():
			return nil, fmt.Errorf("db connect canceled: %w", ctx.Err())
		}
	}
	return nil, fmt.Errorf("database unreachable after %d attempts: %w", maxRetries, err)
}
