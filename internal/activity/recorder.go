package activity

import (
	"context"

	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/event"
)

// Recorder is an event-bus consumer persisting every domain event as an
// activity entry.
type Recorder struct {
	store Store
}

// NewRecorder creates a Recorder on top of a Store.
func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store}
}

// HandleEvent implements the event-bus handler contract.
func (r *Recorder) HandleEvent(ctx context.Context, evt event.DomainEvent) error {
	return r.store.Write(ctx, Entry{
		EventID:    evt.ID,
		EventType:  evt.EventType,
		OccurredAt: evt.OccurredAt,
		FormID:     evt.FormID,
		Summary:    evt.Summary,
		Payload:    evt.Payload,
	})
}
