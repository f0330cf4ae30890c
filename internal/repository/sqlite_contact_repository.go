package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/portfolio/backend/internal/model"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS contact_messages (
	id         TEXT PRIMARY KEY,
	email      TEXT NOT NULL,
	name       TEXT,
	message    TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'unread',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_contact_messages_created_at ON contact_messages (created_at);`

// SQLiteContactRepository stores inbox messages in an embedded SQLite database.
// It is meant for single-instance deployments without PostgreSQL.
type SQLiteContactRepository struct {
	db  *sql.DB
	now func() time.Time
}

var _ ContactStore = (*SQLiteContactRepository)(nil)

// OpenSQLite opens (creating if needed) the database at path and ensures the schema.
// Use ":memory:" for a throwaway database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteContactRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serializes writes.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: create schema: %w", err)
	}
	return &SQLiteContactRepository{db: db, now: time.Now}, nil
}

// Ping checks the database handle.
func (r *SQLiteContactRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database.
func (r *SQLiteContactRepository) Close() {
	_ = r.db.Close()
}

// Save inserts msg, assigning ID and timestamps.
func (r *SQLiteContactRepository) Save(ctx context.Context, msg *model.ContactMessage) error {
	now := r.now().UTC()
	id := uuid.NewString()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO contact_messages (id, email, name, message, status, created_at, updated_at)
		 VALUES (?, ?, NULLIF(?, ''), ?, ?, ?, ?)`,
		id, msg.Email, msg.Name, msg.Message, msg.Status, formatTime(now), formatTime(now),
	)
	if err != nil {
		return err
	}

	msg.ID = id
	msg.CreatedAt = now
	msg.UpdatedAt = now
	return nil
}

// List returns messages newest first. Status "" or "all" returns all messages.
func (r *SQLiteContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	var args []any
	where := ""
	if status := strings.TrimSpace(opts.Status); status != "" && status != "all" {
		where = "WHERE status = ?"
		args = append(args, status)
	}
	args = append(args, opts.Limit, opts.Offset)

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, email, COALESCE(name, ''), message, status, created_at, updated_at
		 FROM contact_messages `+where+`
		 ORDER BY created_at DESC
		 LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*model.ContactMessage
	for rows.Next() {
		var m model.ContactMessage
		var created, updated string
		if err := rows.Scan(&m.ID, &m.Email, &m.Name, &m.Message, &m.Status, &created, &updated); err != nil {
			return nil, err
		}
		if m.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		if m.UpdatedAt, err = parseTime(updated); err != nil {
			return nil, err
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

// UpdateStatus changes the status of a message.
func (r *SQLiteContactRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE contact_messages SET status = ?, updated_at = ? WHERE id = ?`,
		status, formatTime(r.now().UTC()), id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Timestamps are stored as fixed-width RFC 3339 text so they sort lexically.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(sqliteTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parse timestamp %q: %w", s, err)
	}
	return t, nil
}
