// Package handler implements the HTTP handlers of the console service.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/designstore"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/forms"
)

// FormHandler serves form-design CRUD and page rendering.
type FormHandler struct {
	svc *forms.Service
}

// NewFormHandler creates a new FormHandler.
func NewFormHandler(svc *forms.Service) *FormHandler {
	return &FormHandler{svc: svc}
}

// ListDesigns handles GET /v1/forms.
func (h *FormHandler) ListDesigns(w http.ResponseWriter, r *http.Request) {
	sums, err := h.svc.ListDesigns(r.Context())
	if err != nil {
		serviceErrorToHTTP(w, err)
		return
	}
	if sums == nil {
		sums = []designstore.Summary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": sums})
}

// GetDesign handles GET /v1/forms/{formID}. The stored document is returned
// verbatim.
func (h *FormHandler) GetDesign(w http.ResponseWriter, r *http.Request) {
	raw, err := h.svc.GetDesign(r.Context(), formID(r))
	if err != nil {
		serviceErrorToHTTP(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

// SaveDesign handles PUT /v1/forms/{formID}.
func (h *FormHandler) SaveDesign(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(r.Body, 4<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	id := formID(r)
	if err := h.svc.SaveDesign(r.Context(), id, raw); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_DESIGN", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"form_id": id, "status": "saved"})
}

// DeleteDesign handles DELETE /v1/forms/{formID}.
func (h *FormHandler) DeleteDesign(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteDesign(r.Context(), formID(r)); err != nil {
		serviceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// RenderPage handles GET /v1/forms/{formID}/render. Query params: locale,
// record_id, preview. Live form state may be supplied in the body of a POST
// to the same route.
func (h *FormHandler) RenderPage(w http.ResponseWriter, r *http.Request) {
	opts := forms.RenderOptions{
		Locale:       locale(r),
		RecordID:     r.URL.Query().Get("record_id"),
		SessionToken: sessionToken(r),
		Preview:      r.URL.Query().Get("preview") == "true",
	}
	if r.Method == http.MethodPost && r.Body != nil {
		var body struct {
			FormState map[string]any `json:"form_state"`
		}
		if err := decodeJSON(r, &body); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
			return
		}
		opts.FormState = body.FormState
	}

	page, err := h.svc.RenderPage(r.Context(), formID(r), opts)
	if err != nil {
		serviceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// serviceErrorToHTTP maps service errors to HTTP responses.
func serviceErrorToHTTP(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, designstore.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, forms.ErrWorkflow):
		writeError(w, http.StatusBadGateway, "WORKFLOW_ERROR", err.Error())
	default:
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
			return
		}
		logrus.WithError(err).Error("internal error")
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
