package forms

import (
	"context"
	"fmt"

	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/event"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/masterdata"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/schema"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/searchstate"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/workflow"
)

// SearchRequest parameterizes one search execution against a form's workflow.
type SearchRequest struct {
	Command      string            `json:"command" validate:"required"`
	SearchText   string            `json:"searchtext"`
	Advanced     map[string]string `json:"advancedsearch"`
	PageIndex    int               `json:"page_index" validate:"gte=0"`
	PageSize     int               `json:"page_size" validate:"gte=0,lte=500"`
	Locale       string            `json:"locale"`
	SessionToken string            `json:"-"`
	// Parameters carries extra workflow parameters; "@"-prefixed values are
	// master-data placeholders resolved against RecordID before the call.
	Parameters map[string]any `json:"parameters"`
	RecordID   string         `json:"record_id"`
}

// SearchResult is the search outcome plus the post-search state snapshot.
type SearchResult struct {
	Page     *schema.PageData[schema.Record] `json:"page"`
	Stale    bool                            `json:"stale"`
	State    searchstate.FormSearchState     `json:"state"`
	TotalRow int                             `json:"total_row"`
}

// ExecuteSearch runs a form search end to end: it records the request in the
// coordinator, executes the workflow and applies the response unless a newer
// search has been issued meanwhile, in which case the response is discarded.
func (s *Service) ExecuteSearch(ctx context.Context, formID string, req SearchRequest) (*SearchResult, error) {
	raw, err := s.store.Get(ctx, formID)
	if err != nil {
		return nil, err
	}
	design, err := schema.ParseDesign(raw)
	if err != nil {
		return nil, err
	}

	if req.PageSize <= 0 {
		req.PageSize = 10
	}

	s.states.InitForm(formID)
	s.states.SetSearchText(formID, req.SearchText)
	if req.Advanced != nil {
		s.states.SetAdvancedSearch(formID, req.Advanced)
	}
	generation := s.states.BeginSearch(formID)

	params, err := s.searchParameters(req)
	if err != nil {
		s.states.SetIsFetching(formID, false)
		return nil, err
	}

	res, err := s.client.Run(ctx, workflow.RunRequest{
		SessionToken: req.SessionToken,
		WorkflowID:   design.Info.Data,
		Input: workflow.SearchInput{
			CommandName: req.Command,
			IsSearch:    true,
			PageIndex:   req.PageIndex,
			PageSize:    req.PageSize,
			Parameters:  params,
		},
	})
	if err != nil {
		s.states.SetIsFetching(formID, false)
		return nil, err
	}
	if !res.OK() {
		s.states.SetIsFetching(formID, false)
		return nil, fmt.Errorf("%w: %s", ErrWorkflow, res.Err.Code)
	}

	page := &schema.PageData[schema.Record]{
		Items:     res.Items,
		PageIndex: req.PageIndex,
		PageSize:  req.PageSize,
	}
	applied := s.states.SetDataSearch(formID, generation, page)

	s.bus.Publish(ctx, event.NewSearchExecuted(event.SearchExecutedPayload{
		FormID:     formID,
		Command:    req.Command,
		PageIndex:  req.PageIndex,
		PageSize:   req.PageSize,
		ResultRows: len(res.Items),
		Discarded:  !applied,
	}))

	return &SearchResult{
		Page:     page,
		Stale:    !applied,
		State:    s.states.Snapshot(formID),
		TotalRow: page.TotalCount(),
	}, nil
}

// searchParameters merges the request's filters into the workflow parameter
// map: advanced filters first, then free text, then locale, with any
// caller-supplied parameters resolved for master-data placeholders.
func (s *Service) searchParameters(req SearchRequest) (map[string]any, error) {
	params := map[string]any{}
	if len(req.Parameters) > 0 {
		resolved, err := masterdata.ResolveParameters(
			map[string]any{"parameters": req.Parameters}, req.RecordID, req.Locale)
		if err != nil {
			return nil, err
		}
		if inner, ok := resolved["parameters"].(map[string]any); ok {
			params = inner
		}
	}
	for field, value := range req.Advanced {
		params[field] = value
	}
	if req.SearchText != "" {
		params["searchtext"] = req.SearchText
	}
	params["language"] = schema.NormalizeLocale(req.Locale)
	return params, nil
}

// ClearSearch drops all search state held for formID.
func (s *Service) ClearSearch(ctx context.Context, formID string) {
	s.states.ClearForm(formID)
	s.bus.Publish(ctx, event.NewFormStateCleared(event.FormStateClearedPayload{FormID: formID}))
}

// SearchState returns the current state snapshot for formID, initializing
// defaults if the form was never touched.
func (s *Service) SearchState(formID string) searchstate.FormSearchState {
	s.states.InitForm(formID)
	return s.states.Snapshot(formID)
}
