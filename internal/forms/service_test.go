package forms

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/designstore"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/dictionary"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/event"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/render"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/searchstate"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/workflow"
)

const accountDesign = `{
	"form_id": "ACCT",
	"info": {"data": "wf.account", "lang": {"title": {"en": "Accounts", "vi": "Tài khoản"}}},
	"list_layout": [{
		"list_view": [
			{
				"code": "main",
				"isBox": "true",
				"lang": {"title": {"en": "Account details"}},
				"list_input": [
					{"inputtype": "cTextInput", "default": {"code": "accountno", "name": "Account No"},
					 "config": {"structable_read": "account.accountno"}},
					{"inputtype": "cTextInput", "default": {"code": "branch", "name": "Branch"},
					 "config": {}}
				]
			},
			{
				"code": "audit",
				"isTab": "true",
				"lang": {"title": {"en": "Audit"}},
				"list_input": [
					{"inputtype": "cLabel", "default": {"code": "createdby", "name": "Created by"}, "config": {}}
				]
			}
		]
	}],
	"list_rule": [
		{"code": "visibility", "config": {"component_result": "branch", "component_event": "on_change", "visible": "false"}}
	]
}`

// capturePublisher records published events for assertions.
type capturePublisher struct {
	mu     sync.Mutex
	events []event.DomainEvent
}

func (p *capturePublisher) Publish(_ context.Context, evt event.DomainEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *capturePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, evt := range p.events {
		out[i] = evt.EventType
	}
	return out
}

func newTestService(t *testing.T) (*Service, *workflow.Memory, *capturePublisher) {
	t.Helper()
	store := designstore.NewMemoryStore()
	client := workflow.NewMemory()
	bus := &capturePublisher{}
	svc := New(store, client, searchstate.NewCoordinator(), render.NewRegistry(), dictionary.New(), bus)
	require.NoError(t, svc.SaveDesign(t.Context(), "ACCT", []byte(accountDesign)))
	return svc, client, bus
}

func TestSaveDesignRejectsInvalid(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := t.Context()

	err := svc.SaveDesign(ctx, "BAD", []byte(`{"info":{},"list_layout":[]}`))
	assert.Error(t, err, "missing form_id must be rejected")

	err = svc.SaveDesign(ctx, "OTHER", []byte(accountDesign))
	assert.ErrorContains(t, err, "does not match")
}

func TestGetAndListDesigns(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := t.Context()

	raw, err := svc.GetDesign(ctx, "ACCT")
	require.NoError(t, err)
	assert.JSONEq(t, accountDesign, string(raw))

	sums, err := svc.ListDesigns(ctx)
	require.NoError(t, err)
	require.Len(t, sums, 1)
	assert.Equal(t, "Accounts", sums[0].Title)

	_, err = svc.GetDesign(ctx, "NOPE")
	assert.ErrorIs(t, err, designstore.ErrNotFound)
}

func TestRenderPageComposesGroupsAndTabs(t *testing.T) {
	svc, _, bus := newTestService(t)

	page, err := svc.RenderPage(t.Context(), "ACCT", RenderOptions{Locale: "en"})
	require.NoError(t, err)

	assert.Equal(t, "Accounts", page.Title)
	require.Len(t, page.Groups, 1)
	assert.True(t, page.Groups[0].Boxed)
	assert.Equal(t, "Account details", page.Groups[0].Title)

	// The branch input is hidden by the visibility rule.
	require.Len(t, page.Groups[0].Controls, 1)
	assert.Equal(t, "accountno", page.Groups[0].Controls[0].Code)

	// Tab content is rendered up front.
	require.Len(t, page.Tabs, 1)
	assert.Equal(t, "Audit", page.Tabs[0].Title)
	require.Len(t, page.Tabs[0].Controls, 1)

	assert.Contains(t, bus.types(), "form_rendered")
}

func TestRenderPageUnknownLocaleFallsBack(t *testing.T) {
	svc, _, _ := newTestService(t)

	page, err := svc.RenderPage(t.Context(), "ACCT", RenderOptions{Locale: "fr"})
	require.NoError(t, err)
	assert.Equal(t, "Accounts", page.Title)
}

func TestRenderPageFetchesViewData(t *testing.T) {
	svc, client, _ := newTestService(t)
	client.SeedRun("wf.account", []map[string]any{
		{"id": "rec-1", "accountno": "0001000234"},
	})

	page, err := svc.RenderPage(t.Context(), "ACCT", RenderOptions{Locale: "en", RecordID: "rec-1"})
	require.NoError(t, err)
	require.Len(t, page.Groups[0].Controls, 1)
	assert.Equal(t, "0001000234", page.Groups[0].Controls[0].Value)
}

func TestExecuteSearchAppliesStateAndPaginates(t *testing.T) {
	svc, client, bus := newTestService(t)
	client.SeedRun("wf.account", []map[string]any{
		{"id": "1", "total_count": float64(3)},
		{"id": "2"},
		{"id": "3"},
	})

	res, err := svc.ExecuteSearch(t.Context(), "ACCT", SearchRequest{
		Command:    "SimpleSearchAccount",
		SearchText: "cust",
		Advanced:   map[string]string{"branch": "HQ"},
		PageIndex:  0,
		PageSize:   2,
	})
	require.NoError(t, err)

	assert.False(t, res.Stale)
	require.NotNil(t, res.Page)
	assert.Len(t, res.Page.Items, 2)
	assert.Equal(t, 3, res.TotalRow)

	assert.Equal(t, "cust", res.State.SearchText)
	assert.Equal(t, "HQ", res.State.AdvancedSearch["branch"])
	assert.False(t, res.State.IsFetching)
	require.NotNil(t, res.State.DataSearch)
	assert.Len(t, res.State.DataSearch.Items, 2)

	assert.Contains(t, bus.types(), "search_executed")
}

func TestExecuteSearchWorkflowError(t *testing.T) {
	svc, client, _ := newTestService(t)
	client.FailRun("wf.account", workflow.ErrorInfo{Code: "ACCT_LOCKED"})

	_, err := svc.ExecuteSearch(t.Context(), "ACCT", SearchRequest{Command: "SimpleSearchAccount"})
	assert.ErrorIs(t, err, ErrWorkflow)
	assert.ErrorContains(t, err, "ACCT_LOCKED")

	// The fetching flag must not stay stuck after a failure.
	assert.False(t, svc.SearchState("ACCT").IsFetching)
}

func TestExecuteSearchResolvesPlaceholders(t *testing.T) {
	svc, _, _ := newTestService(t)

	params, err := svc.searchParameters(SearchRequest{
		Parameters: map[string]any{"accountid": "@id", "fixed": "x"},
		RecordID:   "rec-9",
		Locale:     "vi",
	})
	require.NoError(t, err)
	assert.Equal(t, "rec-9", params["accountid"])
	assert.Equal(t, "x", params["fixed"])
	assert.Equal(t, "vi", params["language"])
}

func TestClearSearchDropsState(t *testing.T) {
	svc, client, bus := newTestService(t)
	client.SeedRun("wf.account", []map[string]any{{"id": "1"}})

	_, err := svc.ExecuteSearch(t.Context(), "ACCT", SearchRequest{Command: "SimpleSearchAccount"})
	require.NoError(t, err)
	require.NotNil(t, svc.SearchState("ACCT").DataSearch)

	svc.ClearSearch(t.Context(), "ACCT")
	state := svc.SearchState("ACCT")
	assert.Nil(t, state.DataSearch)
	assert.Empty(t, state.SearchText)
	assert.Contains(t, bus.types(), "form_state_cleared")
}

func TestDeleteDesign(t *testing.T) {
	svc, _, bus := newTestService(t)
	ctx := t.Context()

	require.NoError(t, svc.DeleteDesign(ctx, "ACCT"))
	_, err := svc.GetDesign(ctx, "ACCT")
	assert.ErrorIs(t, err, designstore.ErrNotFound)
	assert.Contains(t, bus.types(), "design_deleted")

	assert.ErrorIs(t, svc.DeleteDesign(ctx, "NOPE"), designstore.ErrNotFound)
}

const cardDesign = `{
	"form_id": "CARD",
	"info": {"data": "wf.card", "lang": {"title": {"en": "Cards"}}},
	"list_layout": [{
		"list_view": [{
			"code": "main",
			"list_input": [
				{"inputtype": "cTextInput", "default": {"code": "cardstatus", "name": "Status"},
				 "config": {"isSearch": true}},
				{"inputtype": "jSONEditor", "default": {"code": "txlimits", "name": "Limits"},
				 "config": {"get_data_format": "json"}}
			]
		}]
	}]
}`

func TestApplyChangeEncodesStructuredEdit(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := t.Context()
	require.NoError(t, svc.SaveDesign(ctx, "CARD", []byte(cardDesign)))

	value, err := svc.ApplyChange(ctx, "CARD", "txlimits", map[string]any{"daily": "900"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"daily": "900"}`, value.(string),
		"the editor's object tree goes back to its wire string")

	// Rendering the stored wire string round-trips to the edited tree.
	page, err := svc.RenderPage(ctx, "CARD", RenderOptions{
		Locale:    "en",
		FormState: map[string]any{"txlimits": value},
	})
	require.NoError(t, err)
	require.Len(t, page.Groups, 1)
	require.Len(t, page.Groups[0].Controls, 2)
	assert.Equal(t, map[string]any{"daily": "900"}, page.Groups[0].Controls[1].Value)
}

func TestApplyChangeUpdatesSearchState(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := t.Context()
	require.NoError(t, svc.SaveDesign(ctx, "CARD", []byte(cardDesign)))

	_, err := svc.ApplyChange(ctx, "CARD", "cardstatus", "ACTIVE")
	require.NoError(t, err)
	state := svc.SearchState("CARD")
	assert.True(t, state.IsModify)
	assert.Equal(t, map[string]string{"cardstatus": "ACTIVE"}, state.AdvancedSearch)

	// Blurring the field empty clears the filter; a plain field edit leaves
	// the filters alone.
	_, err = svc.ApplyChange(ctx, "CARD", "cardstatus", "   ")
	require.NoError(t, err)
	assert.Empty(t, svc.SearchState("CARD").AdvancedSearch)

	_, err = svc.ApplyChange(ctx, "CARD", "txlimits", "note")
	require.NoError(t, err)
	assert.Empty(t, svc.SearchState("CARD").AdvancedSearch)
}

func TestApplyChangeUnknownForm(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.ApplyChange(t.Context(), "NOPE", "f", "v")
	assert.ErrorIs(t, err, designstore.ErrNotFound)
}
