package designstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SQLiteStore implements Store on a plain SQL table. Designs are opaque JSON
// text; the title column is denormalized at write time so listing never has
// to parse every document.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// CreateTable creates the form_designs table. Run during startup migration.
func (s *SQLiteStore) CreateTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS form_designs (
			form_id    TEXT PRIMARY KEY,
			title      TEXT NOT NULL DEFAULT '',
			design     TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);
	`)
	return err
}

// Put inserts or replaces the design for formID.
func (s *SQLiteStore) Put(ctx context.Context, formID string, design []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO form_designs (form_id, title, design, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (form_id) DO UPDATE SET
			title = excluded.title,
			design = excluded.design,
			updated_at = excluded.updated_at
	`, formID, designTitle(design), string(design), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving form design %s: %w", formID, err)
	}
	return nil
}

// Get returns the raw design document for formID.
func (s *SQLiteStore) Get(ctx context.Context, formID string) ([]byte, error) {
	var design string
	err := s.db.QueryRowContext(ctx,
		`SELECT design FROM form_designs WHERE form_id = ?`, formID,
	).Scan(&design)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading form design %s: %w", formID, err)
	}
	return []byte(design), nil
}

// List returns summaries for all stored designs, most recently updated first.
func (s *SQLiteStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT form_id, title, updated_at FROM form_designs ORDER BY updated_at DESC, form_id`)
	if err != nil {
		return nil, fmt.Errorf("listing form designs: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.FormID, &sum.Title, &sum.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning form design row: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Delete removes the design for formID.
func (s *SQLiteStore) Delete(ctx context.Context, formID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM form_designs WHERE form_id = ?`, formID)
	if err != nil {
		return fmt.Errorf("deleting form design %s: %w", formID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// designTitle pulls the English form title out of the document for the
// listing column. Missing pieces just yield an empty title.
func designTitle(design []byte) string {
	var doc struct {
		Info struct {
			Lang struct {
				Title map[string]string `json:"title"`
			} `json:"lang"`
		} `json:"info"`
	}
	if err := json.Unmarshal(design, &doc); err != nil {
		return ""
	}
	return doc.Info.Lang.Title["en"]
}
