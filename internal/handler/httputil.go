package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// writeJSON marshals v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("writeJSON encode error")
	}
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
		"code":  code,
	})
}

// decodeJSON decodes the request body into v.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// formID extracts the form id path parameter.
func formID(r *http.Request) string {
	return chi.URLParam(r, "formID")
}

// Pagination holds parsed pagination parameters.
type Pagination struct {
	PageIndex int
	PageSize  int
}

// parsePagination extracts page_index and page_size from query params.
func parsePagination(r *http.Request) Pagination {
	p := Pagination{PageIndex: 0, PageSize: 10}
	if v := r.URL.Query().Get("page_index"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			p.PageIndex = n
		}
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.PageSize = n
		}
	}
	if p.PageSize > 500 {
		p.PageSize = 500
	}
	return p
}

// sessionToken extracts the caller's session token header. Empty is allowed;
// the system-service rejects calls that actually need one.
func sessionToken(r *http.Request) string {
	return r.Header.Get("X-Session-Token")
}

// locale resolves the request locale from query param then header.
func locale(r *http.Request) string {
	if l := r.URL.Query().Get("locale"); l != "" {
		return l
	}
	return r.Header.Get("X-Locale")
}
