package postgres

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // Драйвер Postgres
)

// Open открывает пул соединений через pgx stdlib.
// Доступность базы проверяется отдельно, через Ping при старте.
func Open(connString string, maxConns int) (*sql.DB, error) {
	if connString == "" {
		return nil, fmt.Errorf("postgres: connection string is empty")
	}
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	if maxConns <= 0 {
		maxConns = 5
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}
