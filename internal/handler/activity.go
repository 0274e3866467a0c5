package handler

import (
	"net/http"
	"time"

	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/activity"
)

// ActivityHandler serves the audit-trail query endpoint.
type ActivityHandler struct {
	store activity.Store
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(store activity.Store) *ActivityHandler {
	return &ActivityHandler{store: store}
}

// Query handles GET /v1/activity. Query params: form_id, event_type, since
// (RFC 3339), limit.
func (h *ActivityHandler) Query(w http.ResponseWriter, r *http.Request) {
	opts := activity.QueryOptions{
		FormID:    r.URL.Query().Get("form_id"),
		EventType: r.URL.Query().Get("event_type"),
		Limit:     parsePagination(r).PageSize,
	}
	if v := r.URL.Query().Get("since"); v != "" {
		since, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_SINCE", "since must be RFC 3339")
			return
		}
		opts.Since = &since
	}

	entries, err := h.store.Query(r.Context(), opts)
	if err != nil {
		serviceErrorToHTTP(w, err)
		return
	}
	if entries == nil {
		entries = []activity.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": entries})
}
