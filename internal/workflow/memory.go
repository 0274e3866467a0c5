package workflow

import (
	"context"
	"sync"
)

// Memory implements Client against in-memory fixtures. Intended for demos
// and testing — no system-service required.
type Memory struct {
	mu    sync.RWMutex
	runs  map[string][]map[string]any // workflow id -> rows
	codes map[string][]map[string]any // cdgrp/cdname -> rows
	fails map[string]*ErrorInfo       // workflow id -> forced error
}

// NewMemory creates an empty in-memory client.
func NewMemory() *Memory {
	return &Memory{
		runs:  map[string][]map[string]any{},
		codes: map[string][]map[string]any{},
		fails: map[string]*ErrorInfo{},
	}
}

// SeedRun registers the rows a workflow run returns.
func (m *Memory) SeedRun(workflowID string, rows []map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[workflowID] = rows
}

// SeedCodes registers a common-code lookup result.
func (m *Memory) SeedCodes(cdgrp, cdname string, rows []map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[cdgrp+"/"+cdname] = rows
}

// FailRun makes a workflow id return an execution error.
func (m *Memory) FailRun(workflowID string, errInfo ErrorInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fails[workflowID] = &errInfo
}

func (m *Memory) Run(_ context.Context, req RunRequest) (*Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if errInfo, ok := m.fails[req.WorkflowID]; ok {
		return &Result{Err: errInfo}, nil
	}
	rows := m.runs[req.WorkflowID]

	// Apply the request's pagination the way the backend would.
	start := req.Input.PageIndex * req.Input.PageSize
	if req.Input.PageSize <= 0 || start >= len(rows) {
		if req.Input.PageSize <= 0 {
			return &Result{Items: rows}, nil
		}
		return &Result{Items: nil}, nil
	}
	end := start + req.Input.PageSize
	if end > len(rows) {
		end = len(rows)
	}
	return &Result{Items: rows[start:end]}, nil
}

func (m *Memory) View(_ context.Context, req ViewRequest) (*Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if errInfo, ok := m.fails[req.WorkflowID]; ok {
		return &Result{Err: errInfo}, nil
	}
	id, _ := req.Parameters["id"].(string)
	for _, row := range m.runs[req.WorkflowID] {
		if rid, ok := row["id"].(string); ok && rid == id {
			return &Result{Items: []map[string]any{row}}, nil
		}
	}
	return &Result{Items: nil}, nil
}

func (m *Memory) ListCodes(_ context.Context, cdgrp, cdname string) ([]map[string]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.codes[cdgrp+"/"+cdname], nil
}
