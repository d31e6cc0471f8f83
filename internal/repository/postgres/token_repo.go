package postgres

/*
Файл token_repo.go хранит слот с токеном сессии в key/value таблице.
Так несколько процессов консоли на одной машине оператора видят общий токен.
*/

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xela07ax/inventory-console/internal/infra"
)

type TokenRepo struct {
	db  *sql.DB
	key string
}

// NewTokenRepo создает репозиторий поверх уже открытого пула
func NewTokenRepo(db *sql.DB) *TokenRepo {
	return &TokenRepo{db: db, key: infra.TokenKey}
}

// EnsureSchema создает таблицу, если ее еще нет
func (r *TokenRepo) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS ` + infra.PostgresTableKV + ` (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("postgres: failed to create %s: %w", infra.PostgresTableKV, err)
	}
	return nil
}

func (r *TokenRepo) Get(ctx context.Context) (string, bool, error) {
	query := `SELECT value FROM ` + infra.PostgresTableKV + ` WHERE key = $1`

	var token string
	err := r.db.QueryRowContext(ctx, query, r.key).Scan(&token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("postgres: failed to read token: %w", err)
	}
	return token, token != "", nil
}

func (r *TokenRepo) Set(ctx context.Context, token string) error {
	query := `
		INSERT INTO ` + infra.PostgresTableKV + ` (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, r.key, token); err != nil {
		return fmt.Errorf("postgres: failed to store token: %w", err)
	}
	return nil
}

func (r *TokenRepo) Clear(ctx context.Context) error {
	query := `DELETE FROM ` + infra.PostgresTableKV + ` WHERE key = $1`

	if _, err := r.db.ExecContext(ctx, query, r.key); err != nil {
		return fmt.Errorf("postgres: failed to clear token: %w", err)
	}
	return nil
}

// Ping проверяет доступность базы при старте
func (r *TokenRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
