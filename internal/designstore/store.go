// Package designstore persists form-design documents. The SQLite store backs
// the service; the memory store backs tests and demos.
package designstore

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound marks a missing form design.
var ErrNotFound = errors.New("designstore: form design not found")

// Summary is one row of the form-manager listing.
type Summary struct {
	FormID    string    `json:"form_id"`
	Title     string    `json:"title,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is the persistence port for form designs. Designs are stored as the
// raw validated JSON document; the interpreter re-parses on read so the
// stored form is always the source of truth.
type Store interface {
	Put(ctx context.Context, formID string, design []byte) error
	Get(ctx context.Context, formID string) ([]byte, error)
	List(ctx context.Context) ([]Summary, error)
	Delete(ctx context.Context, formID string) error
}
