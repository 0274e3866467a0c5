// Package activity keeps the audit trail of the console: every domain event
// is recorded as one entry, queryable per form. Entries live in a plain SQL
// table, written by an event-bus consumer.
package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Entry is one recorded domain event.
type Entry struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	FormID     string          `json:"form_id"`
	Summary    string          `json:"summary"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// QueryOptions filters and pages an activity query.
type QueryOptions struct {
	FormID    string
	EventType string
	Since     *time.Time
	Limit     int
}

// Store is the interface for reading and writing activity entries.
type Store interface {
	// Write appends one entry.
	Write(ctx context.Context, entry Entry) error

	// Query returns entries newest first, filtered by opts.
	Query(ctx context.Context, opts QueryOptions) ([]Entry, error)
}

// normalizeLimit clamps a query limit to a sane page size.
func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return 100
	}
	return limit
}

func validate(entry Entry) error {
	if entry.EventID == "" || entry.EventType == "" {
		return fmt.Errorf("activity: entry needs event_id and event_type")
	}
	return nil
}
