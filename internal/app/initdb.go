package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/IT-Nick/garden-bot/internal/infra/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InitDatabase устанавливает подключение к базе данных
func InitDatabase(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	const op = "app.InitDatabase"

	connConfig, err := pgxpool.ParseConfig(cfg.DatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse database config: %w", op, err)
	}

	db, err := pgxpool.NewWithConfig(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create database pool: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: failed to ping database: %w", op, err)
	}

	slog.InfoContext(ctx, "database connected", slog.String("host", cfg.Database.Host))
	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
        id          SERIAL PRIMARY KEY,
        telegram_id BIGINT UNIQUE NOT NULL,
        user_name   VARCHAR(250),
        first_name  VARCHAR(250),
        last_name   VARCHAR(250),
        joined_at   TIMESTAMPTZ NOT NULL DEFAULT now()
    )`,
	`CREATE TABLE IF NOT EXISTS actions (
        id         SERIAL PRIMARY KEY,
        user_id    INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
        type       INTEGER NOT NULL,
        created_at TIMESTAMPTZ NOT NULL DEFAULT now()
    )`,
	`CREATE INDEX IF NOT EXISTS users_joined_at_idx ON users (joined_at)`,
	`CREATE INDEX IF NOT EXISTS actions_user_type_created_idx ON actions (user_id, type, created_at)`,
}

// InitSchema создает таблицы, если их еще нет
func InitSchema(ctx context.Context, db *pgxpool.Pool) error {
	const op = "app.InitSchema"

	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("%s: failed to apply schema: %w", op, err)
		}
	}
	return nil
}
