package workflow

import (
	"context"
)

// SearchInput is the inner payload of a run-dynamic-workflow request.
type SearchInput struct {
	CommandName string         `json:"commandname"`
	IsSearch    bool           `json:"issearch"`
	PageIndex   int            `json:"pageindex"`
	PageSize    int            `json:"pagesize"`
	Parameters  map[string]any `json:"parameters"`
}

// RunRequest is the generic "run dynamic workflow" request shape.
type RunRequest struct {
	SessionToken string      `json:"sessiontoken"`
	WorkflowID   string      `json:"workflowid"`
	Input        SearchInput `json:"input"`
}

// ViewRequest is the generic "view one record" request shape.
type ViewRequest struct {
	SessionToken string         `json:"sessiontoken"`
	WorkflowID   string         `json:"workflowid"`
	CommandName  string         `json:"commandname"`
	IsSearch     bool           `json:"issearch"`
	Parameters   map[string]any `json:"parameters"`
}

// NewViewRequest builds a view-one-record request for the given id.
func NewViewRequest(token, workflowID, commandName, id string) ViewRequest {
	return ViewRequest{
		SessionToken: token,
		WorkflowID:   workflowID,
		CommandName:  commandName,
		IsSearch:     false,
		Parameters:   map[string]any{"id": id},
	}
}

// Client is the port through which the form engine reaches the
// system-service. Implementations normalize every response before returning:
// the core never sees the raw envelope.
type Client interface {
	// Run executes a dynamic workflow (searches, button commands).
	Run(ctx context.Context, req RunRequest) (*Result, error)
	// View fetches a single record by id.
	View(ctx context.Context, req ViewRequest) (*Result, error)
	// ListCodes resolves a common-code lookup (cdlist data mode).
	ListCodes(ctx context.Context, cdgrp, cdname string) ([]map[string]any, error)
}
