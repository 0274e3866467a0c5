// Package event defines the domain events published by the console service.
// Events are observational only; no business decision depends on a consumer
// having run.
package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DomainEvent carries the canonical shape of every domain event.
type DomainEvent struct {
	ID         string
	EventType  string
	OccurredAt time.Time
	FormID     string
	Summary    string
	Payload    json.RawMessage
}

func newID() string { return uuid.New().String() }

func mustJSON(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

// FormRenderedPayload carries event-specific data for FormRendered.
type FormRenderedPayload struct {
	FormID       string `json:"form_id"`
	Locale       string `json:"locale"`
	ControlCount int    `json:"control_count"`
	TabCount     int    `json:"tab_count"`
	Preview      bool   `json:"preview"`
}

func NewFormRendered(p FormRenderedPayload) DomainEvent {
	return DomainEvent{
		ID:         newID(),
		EventType:  "form_rendered",
		OccurredAt: time.Now(),
		FormID:     p.FormID,
		Summary:    fmt.Sprintf("Form %s rendered with %d controls (%s)", p.FormID, p.ControlCount, p.Locale),
		Payload:    mustJSON(p),
	}
}

// SearchExecutedPayload carries event-specific data for SearchExecuted.
type SearchExecutedPayload struct {
	FormID     string `json:"form_id"`
	Command    string `json:"command"`
	PageIndex  int    `json:"page_index"`
	PageSize   int    `json:"page_size"`
	ResultRows int    `json:"result_rows"`
	Discarded  bool   `json:"discarded"`
}

func NewSearchExecuted(p SearchExecutedPayload) DomainEvent {
	summary := fmt.Sprintf("Search on form %s returned %d rows (page %d)", p.FormID, p.ResultRows, p.PageIndex)
	if p.Discarded {
		summary = fmt.Sprintf("Stale search response on form %s discarded", p.FormID)
	}
	return DomainEvent{
		ID:         newID(),
		EventType:  "search_executed",
		OccurredAt: time.Now(),
		FormID:     p.FormID,
		Summary:    summary,
		Payload:    mustJSON(p),
	}
}

// FormStateClearedPayload carries event-specific data for FormStateCleared.
type FormStateClearedPayload struct {
	FormID string `json:"form_id"`
}

func NewFormStateCleared(p FormStateClearedPayload) DomainEvent {
	return DomainEvent{
		ID:         newID(),
		EventType:  "form_state_cleared",
		OccurredAt: time.Now(),
		FormID:     p.FormID,
		Summary:    fmt.Sprintf("Search state for form %s cleared", p.FormID),
		Payload:    mustJSON(p),
	}
}

// DesignSavedPayload carries event-specific data for DesignSaved.
type DesignSavedPayload struct {
	FormID string `json:"form_id"`
	Bytes  int    `json:"bytes"`
}

func NewDesignSaved(p DesignSavedPayload) DomainEvent {
	return DomainEvent{
		ID:         newID(),
		EventType:  "design_saved",
		OccurredAt: time.Now(),
		FormID:     p.FormID,
		Summary:    fmt.Sprintf("Design for form %s saved (%d bytes)", p.FormID, p.Bytes),
		Payload:    mustJSON(p),
	}
}

// DesignDeletedPayload carries event-specific data for DesignDeleted.
type DesignDeletedPayload struct {
	FormID string `json:"form_id"`
}

func NewDesignDeleted(p DesignDeletedPayload) DomainEvent {
	return DomainEvent{
		ID:         newID(),
		EventType:  "design_deleted",
		OccurredAt: time.Now(),
		FormID:     p.FormID,
		Summary:    fmt.Sprintf("Design for form %s deleted", p.FormID),
		Payload:    mustJSON(p),
	}
}
