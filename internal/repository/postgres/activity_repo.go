package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/xela07ax/inventory-console/internal/activity"
	"github.com/xela07ax/inventory-console/internal/infra"
)

type ActivityRepo struct {
	db *sql.DB
}

func NewActivityRepo(db *sql.DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

func (r *ActivityRepo) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS ` + infra.PostgresTableActivity + ` (
			id         UUID PRIMARY KEY,
			kind       TEXT NOT NULL,
			title      TEXT NOT NULL,
			subject    TEXT NOT NULL DEFAULT '',
			request_id TEXT NOT NULL DEFAULT '',
			at         TIMESTAMPTZ NOT NULL
		)`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("postgres: failed to create %s: %w", infra.PostgresTableActivity, err)
	}
	return nil
}

// WriteBatch сохраняет пачку событий одним INSERT
func (r *ActivityRepo) WriteBatch(ctx context.Context, events []activity.Event) error {
	if len(events) == 0 {
		return nil
	}

	// Количество колонок в таблице console_activity
	const numFields = 6
	placeholders := make([]string, 0, len(events))
	vals := make([]any, 0, len(events)*numFields)

	for i, e := range events {
		p := i * numFields
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			p+1, p+2, p+3, p+4, p+5, p+6))
		vals = append(vals, e.ID, string(e.Kind), e.Title, e.Subject, e.RequestID, e.At)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (id, kind, title, subject, request_id, at) VALUES %s ON CONFLICT (id) DO NOTHING",
		infra.PostgresTableActivity,
		strings.Join(placeholders, ", "),
	)

	if _, err := r.db.ExecContext(ctx, query, vals...); err != nil {
		return fmt.Errorf("postgres: failed to write activity batch: %w", err)
	}
	return nil
}

// Recent читает последние события, новые первыми
func (r *ActivityRepo) Recent(ctx context.Context, limit int) ([]activity.Event, error) {
	query := `SELECT id, kind, title, subject, request_id, at FROM ` + infra.PostgresTableActivity +
		` ORDER BY at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to read activity: %w", err)
	}
	defer rows.Close()

	var out []activity.Event
	for rows.Next() {
		var e activity.Event
		var kind string
		if err := rows.Scan(&e.ID, &kind, &e.Title, &e.Subject, &e.RequestID, &e.At); err != nil {
			return nil, err
		}
		e.Kind = activity.Kind(kind)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *ActivityRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
