package live

import "encoding/json"

// ── Client → Server messages ────────────────────────────────────────────────

// ClientMessage is the envelope for all client-to-server WebSocket messages.
type ClientMessage struct {
	Type string          `json:"type"` // "init", "change", "search", "render", "ping"
	ID   string          `json:"id"`   // Client-assigned request ID
	Data json.RawMessage `json:"data,omitempty"`
}

// InitData is the payload for "init" messages.
type InitData struct {
	FormID   string `json:"form_id"`
	Locale   string `json:"locale"`
	RecordID string `json:"record_id,omitempty"`
}

// ChangeData is the payload for "change" messages: one field edit.
type ChangeData struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// SearchData is the payload for "search" messages.
type SearchData struct {
	Command    string            `json:"command"`
	SearchText string            `json:"searchtext"`
	Advanced   map[string]string `json:"advancedsearch,omitempty"`
	PageIndex  int               `json:"page_index"`
	PageSize   int               `json:"page_size"`
}

// ── Server → Client messages ────────────────────────────────────────────────

// ServerMessage is the envelope for all server-to-client WebSocket messages.
type ServerMessage struct {
	Type      string `json:"type"`                 // "session", "page", "results", "error", "pong"
	RequestID string `json:"request_id,omitempty"` // Echoes client ID
	Data      any    `json:"data,omitempty"`
}

// SessionData carries session information after init.
type SessionData struct {
	SessionID string `json:"session_id"`
	FormID    string `json:"form_id"`
	Locale    string `json:"locale"`
}

// ErrorData carries an error message.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
