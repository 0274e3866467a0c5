// Package workflow is the boundary to the system-service backend. It owns the
// request shapes the console emits, the response envelope it receives, and
// the normalization that turns the backend's duck-typed payloads into one
// canonical result before anything reaches the form interpreter.
package workflow

import (
	"net/http"
)

// ErrorInfo describes a single backend execution error.
type ErrorInfo struct {
	Key       string `json:"key"`
	Code      string `json:"code"`
	Type      string `json:"type"`
	Info      string `json:"info"`
	TypeError string `json:"type_error"`
	ExecuteID string `json:"execute_id"`
}

// Envelope is the uniform response wrapper returned by every backend call.
type Envelope struct {
	Payload struct {
		DataResponse struct {
			Data   map[string]any `json:"data,omitempty"`
			Fo     []FoEntry      `json:"fo,omitempty"`
			Errors []ErrorInfo    `json:"errors,omitempty"`
			Error  *ErrorInfo     `json:"error,omitempty"` // legacy singular key
		} `json:"dataresponse"`
	} `json:"payload"`
	Status int `json:"status"`
}

// FoEntry wraps a form-object record in the view-one-record response.
type FoEntry struct {
	Input map[string]any `json:"input"`
}

// Result is the canonical shape handed to the core: a flat item list plus at
// most one error. Exactly one of Items/Err is meaningful.
type Result struct {
	Items []map[string]any
	Err   *ErrorInfo
}

// OK reports whether the call succeeded.
func (r *Result) OK() bool { return r != nil && r.Err == nil }

// IsValidResponse applies the collaborator contract: HTTP 200 and no
// execution errors.
func IsValidResponse(env *Envelope) bool {
	if env == nil || env.Status != http.StatusOK {
		return false
	}
	dr := env.Payload.DataResponse
	return len(dr.Errors) == 0 && dr.Error == nil
}

// Normalize collapses the envelope's key drift into a Result. The backend
// returns the record array under either data.result or data.items; both are
// checked, in that order. Error reporting drifts between a plural errors
// array and a legacy singular error object.
func Normalize(env *Envelope) *Result {
	if env == nil {
		return &Result{Err: &ErrorInfo{Code: "NO_RESPONSE", Info: "backend returned no response"}}
	}
	dr := env.Payload.DataResponse
	if !IsValidResponse(env) {
		errInfo := dr.Error
		if len(dr.Errors) > 0 {
			errInfo = &dr.Errors[0]
		}
		if errInfo == nil {
			errInfo = &ErrorInfo{Code: "INVALID_RESPONSE", Info: "backend response rejected"}
		}
		return &Result{Err: errInfo}
	}

	if len(dr.Fo) > 0 {
		items := make([]map[string]any, 0, len(dr.Fo))
		for _, fo := range dr.Fo {
			if fo.Input != nil {
				items = append(items, fo.Input)
			}
		}
		return &Result{Items: items}
	}

	for _, key := range []string{"result", "items"} {
		rows, ok := dr.Data[key].([]any)
		if !ok {
			continue
		}
		items := make([]map[string]any, 0, len(rows))
		for _, row := range rows {
			if m, ok := row.(map[string]any); ok {
				items = append(items, m)
			}
		}
		return &Result{Items: items}
	}
	return &Result{Items: nil}
}
