package activity

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// SQLiteStore implements Store on a plain SQL table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// CreateTable creates the activity_entries table. Run during startup
// migration.
func (s *SQLiteStore) CreateTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS activity_entries (
			event_id    TEXT PRIMARY KEY,
			event_type  TEXT NOT NULL,
			occurred_at TIMESTAMP NOT NULL,
			form_id     TEXT NOT NULL DEFAULT '',
			summary     TEXT NOT NULL,
			payload     TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_activity_form_time
			ON activity_entries (form_id, occurred_at DESC);
	`)
	return err
}

// Write inserts one entry. Replays of the same event id are ignored.
func (s *SQLiteStore) Write(ctx context.Context, entry Entry) error {
	if err := validate(entry); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO activity_entries (event_id, event_type, occurred_at, form_id, summary, payload)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (event_id) DO NOTHING
	`, entry.EventID, entry.EventType, entry.OccurredAt, entry.FormID, entry.Summary, string(entry.Payload))
	if err != nil {
		return fmt.Errorf("writing activity entry: %w", err)
	}
	return nil
}

// Query returns entries newest first, filtered by opts.
func (s *SQLiteStore) Query(ctx context.Context, opts QueryOptions) ([]Entry, error) {
	conditions := []string{"1=1"}
	var args []any

	if opts.FormID != "" {
		conditions = append(conditions, "form_id = ?")
		args = append(args, opts.FormID)
	}
	if opts.EventType != "" {
		conditions = append(conditions, "event_type = ?")
		args = append(args, opts.EventType)
	}
	if opts.Since != nil {
		conditions = append(conditions, "occurred_at >= ?")
		args = append(args, *opts.Since)
	}
	args = append(args, normalizeLimit(opts.Limit))

	query := fmt.Sprintf(`
		SELECT event_id, event_type, occurred_at, form_id, summary, payload
		FROM activity_entries
		WHERE %s
		ORDER BY occurred_at DESC
		LIMIT ?`, strings.Join(conditions, " AND "))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying activity entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var payload string
		if err := rows.Scan(&e.EventID, &e.EventType, &e.OccurredAt, &e.FormID, &e.Summary, &payload); err != nil {
			return nil, fmt.Errorf("scanning activity entry: %w", err)
		}
		if payload != "" {
			e.Payload = []byte(payload)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
