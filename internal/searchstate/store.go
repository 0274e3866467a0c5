// Package searchstate owns the per-form search state of the console: page
// data, free-text search, advanced-search filters and fetch flags, keyed by
// form id. One Coordinator holds the whole map; everything that reads or
// writes form state goes through it; there is no ambient global.
package searchstate

import (
	"strings"
	"sync"

	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/schema"
)

// FormSearchState is the per-form-id slice of console state.
type FormSearchState struct {
	DataSearch           *schema.PageData[schema.Record] `json:"datasearch,omitempty"`
	IsFetching           bool                            `json:"isFetching"`
	TxfoSearch           any                             `json:"txfoSearch,omitempty"`
	IsModify             bool                            `json:"ismodify"`
	SearchText           string                          `json:"searchtext"`
	AdvancedSearch       map[string]string               `json:"advancedsearch,omitempty"`
	GlobalAdvancedSearch map[string]any                  `json:"globalAdvancedSearch,omitempty"`
	StoreFormSearch      []any                           `json:"storeFormSearch,omitempty"`
	StoreInfoSearch      any                             `json:"storeInfoSearch,omitempty"`
	FetchControlDefault  bool                            `json:"fetchControlDefaultValue"`

	// generation counts issued searches; responses carrying an older
	// generation are stale and must be discarded, not applied.
	generation uint64
}

func newFormSearchState() *FormSearchState {
	return &FormSearchState{
		AdvancedSearch:       map[string]string{},
		GlobalAdvancedSearch: map[string]any{},
		FetchControlDefault:  true,
	}
}

// Coordinator is the single owner of all per-form search state.
type Coordinator struct {
	mu    sync.RWMutex
	forms map[string]*FormSearchState
}

// NewCoordinator creates an empty coordinator.
func NewCoordinator() *Coordinator {
	return &Coordinator{forms: map[string]*FormSearchState{}}
}

// InitForm creates default state for formID if absent. Idempotent: calling it
// again leaves existing state untouched.
func (c *Coordinator) InitForm(formID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.forms[formID]; !ok {
		c.forms[formID] = newFormSearchState()
	}
}

// ClearForm removes the form's state entirely, not a reset to defaults.
// Used when the console closes a form tab.
func (c *Coordinator) ClearForm(formID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.forms, formID)
}

// Snapshot returns a copy of the form's state, creating defaults lazily.
// The copy is safe to hand out; mutating it does not touch the store.
func (c *Coordinator) Snapshot(formID string) FormSearchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.ensure(formID)
	out := *st
	out.AdvancedSearch = cloneStringMap(st.AdvancedSearch)
	out.GlobalAdvancedSearch = cloneAnyMap(st.GlobalAdvancedSearch)
	return out
}

// SetSearchText replaces the free-text search for one form.
func (c *Coordinator) SetSearchText(formID, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensure(formID).SearchText = text
}

// SetAdvancedSearch replaces the advanced-search filter object wholesale.
func (c *Coordinator) SetAdvancedSearch(formID string, filters map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensure(formID).AdvancedSearch = cloneStringMap(filters)
}

// SetAdvancedSearchField sets one advanced-search key; an empty value after
// trimming removes the key instead, mirroring a cleared input.
func (c *Coordinator) SetAdvancedSearchField(formID, field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.ensure(formID)
	value = strings.TrimSpace(value)
	if value == "" {
		delete(st.AdvancedSearch, field)
		return
	}
	st.AdvancedSearch[field] = value
}

// SetGlobalAdvancedSearch replaces the global advanced-search object.
func (c *Coordinator) SetGlobalAdvancedSearch(formID string, filters map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensure(formID).GlobalAdvancedSearch = cloneAnyMap(filters)
}

// SetIsModify flags structural edits on one form.
func (c *Coordinator) SetIsModify(formID string, modified bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensure(formID).IsModify = modified
}

// SetIsFetching toggles the fetch flag for one form.
func (c *Coordinator) SetIsFetching(formID string, fetching bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensure(formID).IsFetching = fetching
}

// BeginSearch marks the form fetching and issues a new generation. The
// returned generation must accompany the eventual SetDataSearch call.
func (c *Coordinator) BeginSearch(formID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.ensure(formID)
	st.generation++
	st.IsFetching = true
	return st.generation
}

// SetDataSearch applies a completed search page. A response whose generation
// is older than the latest issued one is stale: it is dropped and the
// method reports false. The fetch flag clears only when the latest
// generation lands.
func (c *Coordinator) SetDataSearch(formID string, generation uint64, page *schema.PageData[schema.Record]) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.ensure(formID)
	if generation < st.generation {
		return false
	}
	st.DataSearch = page
	st.IsFetching = false
	return true
}

// ensure returns the state for formID, creating defaults lazily.
// Callers must hold the write lock.
func (c *Coordinator) ensure(formID string) *FormSearchState {
	st, ok := c.forms[formID]
	if !ok {
		st = newFormSearchState()
		c.forms[formID] = st
	}
	return st
}

// Has reports whether the form has state without creating it.
func (c *Coordinator) Has(formID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.forms[formID]
	return ok
}

func cloneStringMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneAnyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
