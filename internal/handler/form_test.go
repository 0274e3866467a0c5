package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/designstore"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/dictionary"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/forms"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/render"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/searchstate"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/workflow"
)

const testDesign = `{
	"form_id": "DEPOSIT",
	"info": {"data": "wf.deposit", "lang": {"title": {"en": "Deposits"}}},
	"list_layout": [{
		"list_view": [{
			"code": "main",
			"list_input": [
				{"inputtype": "cTextInput", "default": {"code": "depositno", "name": "Deposit No"}, "config": {}},
				{"inputtype": "cTextInputAdvancedSearch", "default": {"code": "branch", "name": "Branch"}, "config": {}}
			]
		}]
	}]
}`

func newTestRouter(t *testing.T) (chi.Router, *workflow.Memory) {
	t.Helper()
	client := workflow.NewMemory()
	svc := forms.New(designstore.NewMemoryStore(), client, searchstate.NewCoordinator(),
		render.NewRegistry(), dictionary.New(), nil)

	fh := NewFormHandler(svc)
	sh := NewSearchHandler(svc)

	r := chi.NewRouter()
	r.Get("/v1/forms", fh.ListDesigns)
	r.Get("/v1/forms/{formID}", fh.GetDesign)
	r.Put("/v1/forms/{formID}", fh.SaveDesign)
	r.Delete("/v1/forms/{formID}", fh.DeleteDesign)
	r.Get("/v1/forms/{formID}/render", fh.RenderPage)
	r.Post("/v1/forms/{formID}/render", fh.RenderPage)
	r.Post("/v1/forms/{formID}/search", sh.Execute)
	r.Post("/v1/forms/{formID}/search/clear", sh.Clear)
	r.Get("/v1/forms/{formID}/search/state", sh.State)
	return r, client
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestDesignLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := do(t, r, http.MethodPut, "/v1/forms/DEPOSIT", testDesign)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, r, http.MethodGet, "/v1/forms/DEPOSIT", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, testDesign, rec.Body.String())

	rec = do(t, r, http.MethodGet, "/v1/forms", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listing struct {
		Items []designstore.Summary `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	require.Len(t, listing.Items, 1)
	assert.Equal(t, "Deposits", listing.Items[0].Title)

	rec = do(t, r, http.MethodDelete, "/v1/forms/DEPOSIT", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, r, http.MethodGet, "/v1/forms/DEPOSIT", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSaveDesignRejectsInvalidDocument(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := do(t, r, http.MethodPut, "/v1/forms/DEPOSIT", `{"list_layout": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_DESIGN", body["code"])
}

func TestRenderPageEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPut, "/v1/forms/DEPOSIT", testDesign).Code)

	rec := do(t, r, http.MethodGet, "/v1/forms/DEPOSIT/render?locale=en", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var page struct {
		FormID string `json:"form_id"`
		Title  string `json:"title"`
		Groups []struct {
			Controls []struct {
				Code   string `json:"code"`
				Search bool   `json:"search"`
			} `json:"controls"`
		} `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, "DEPOSIT", page.FormID)
	assert.Equal(t, "Deposits", page.Title)
	require.Len(t, page.Groups, 1)
	require.Len(t, page.Groups[0].Controls, 2)
	assert.True(t, page.Groups[0].Controls[1].Search)
}

func TestRenderPageWithFormState(t *testing.T) {
	r, _ := newTestRouter(t)
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPut, "/v1/forms/DEPOSIT", testDesign).Code)

	rec := do(t, r, http.MethodPost, "/v1/forms/DEPOSIT/render",
		`{"form_state": {"depositno": "TD-778"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "TD-778")
}

func TestRenderMissingForm(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := do(t, r, http.MethodGet, "/v1/forms/NOPE/render", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchEndpoint(t *testing.T) {
	r, client := newTestRouter(t)
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPut, "/v1/forms/DEPOSIT", testDesign).Code)
	client.SeedRun("wf.deposit", []map[string]any{
		{"id": "1", "total_count": float64(2)},
		{"id": "2"},
	})

	rec := do(t, r, http.MethodPost, "/v1/forms/DEPOSIT/search",
		`{"command": "SimpleSearchDeposit", "searchtext": "TD", "page_size": 10}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res forms.SearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Len(t, res.Page.Items, 2)
	assert.Equal(t, 2, res.TotalRow)
	assert.False(t, res.Stale)

	// State endpoint reflects the search.
	rec = do(t, r, http.MethodGet, "/v1/forms/DEPOSIT/search/state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"searchtext":"TD"`)

	// Clearing drops the state.
	rec = do(t, r, http.MethodPost, "/v1/forms/DEPOSIT/search/clear", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, r, http.MethodGet, "/v1/forms/DEPOSIT/search/state", "")
	assert.NotContains(t, rec.Body.String(), `"searchtext":"TD"`)
}

func TestSearchValidation(t *testing.T) {
	r, _ := newTestRouter(t)
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPut, "/v1/forms/DEPOSIT", testDesign).Code)

	// Missing the required command field.
	rec := do(t, r, http.MethodPost, "/v1/forms/DEPOSIT/search", `{"searchtext": "x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, http.MethodPost, "/v1/forms/DEPOSIT/search", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchWorkflowFailure(t *testing.T) {
	r, client := newTestRouter(t)
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPut, "/v1/forms/DEPOSIT", testDesign).Code)
	client.FailRun("wf.deposit", workflow.ErrorInfo{Code: "SVC_DOWN"})

	rec := do(t, r, http.MethodPost, "/v1/forms/DEPOSIT/search", `{"command": "SimpleSearchDeposit"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "SVC_DOWN")
}
