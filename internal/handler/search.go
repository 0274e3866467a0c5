package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/forms"
)

// SearchHandler serves search execution and search-state endpoints.
type SearchHandler struct {
	svc      *forms.Service
	validate *validator.Validate
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(svc *forms.Service) *SearchHandler {
	return &SearchHandler{
		svc:      svc,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Execute handles POST /v1/forms/{formID}/search.
func (h *SearchHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req forms.SearchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if req.PageIndex == 0 && req.PageSize == 0 {
		p := parsePagination(r)
		req.PageIndex, req.PageSize = p.PageIndex, p.PageSize
	}
	req.SessionToken = sessionToken(r)
	if req.Locale == "" {
		req.Locale = locale(r)
	}

	res, err := h.svc.ExecuteSearch(r.Context(), formID(r), req)
	if err != nil {
		serviceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Clear handles POST /v1/forms/{formID}/search/clear.
func (h *SearchHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.svc.ClearSearch(r.Context(), formID(r))
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// State handles GET /v1/forms/{formID}/search/state.
func (h *SearchHandler) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.SearchState(formID(r)))
}
