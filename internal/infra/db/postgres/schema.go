package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    telegram_id BIGINT UNIQUE,
    full_name TEXT,
    name TEXT,
    phone TEXT,
    region TEXT,
    language TEXT,
    created_at TIMESTAMP DEFAULT NOW()
);`

const createRatingsTable = `
CREATE TABLE IF NOT EXISTS ratings (
    id SERIAL PRIMARY KEY,
    telegram_id BIGINT,
    full_name TEXT,
    stars INTEGER,
    created_at TIMESTAMP DEFAULT NOW()
);`

// InitSchema creates the two tables if they do not exist. Safe to run on
// every startup.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, ddl := range []string{createUsersTable, createRatingsTable} {
		if _, err := pool.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
