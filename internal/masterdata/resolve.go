// Package masterdata resolves the workflow-invocation templates embedded in a
// form design. Master data is an arbitrarily nested object whose parameters
// blocks contain "@id"-style placeholders; resolution substitutes the live
// record id and injects the active locale before the template is dispatched
// to the system-service.
package masterdata

import (
	"errors"
	"strings"
)

// ErrNilMasterData is returned when the caller hands over no master data.
// This is a contract precondition, not a recoverable condition: the layout
// collaborator converts it into a user-facing error page.
var ErrNilMasterData = errors.New("masterdata: master_data is missing")

// parameterKeys are the block names scanned for placeholders. "fields" and
// "Fields" are legacy spellings still present in older designs.
var parameterKeys = []string{"parameters", "fields", "Fields"}

// ResolveParameters walks a deep copy of masterdata, replaces "@id"
// placeholders with id and stamps the locale into every parameters block.
// The input is never mutated; identical inputs produce identical output.
func ResolveParameters(masterdata map[string]any, id, locale string) (map[string]any, error) {
	if masterdata == nil {
		return nil, ErrNilMasterData
	}
	if locale == "" {
		locale = "en"
	}
	clone := cloneMap(masterdata)
	resolveNode(clone, id, locale)
	return clone, nil
}

func resolveNode(node any, id, locale string) {
	switch n := node.(type) {
	case map[string]any:
		for _, key := range parameterKeys {
			if params, ok := n[key].(map[string]any); ok {
				substitute(params, id)
				params["language"] = locale
			}
		}
		for _, v := range n {
			resolveNode(v, id, locale)
		}
	case []any:
		for _, v := range n {
			resolveNode(v, id, locale)
		}
	}
}

// substitute replaces "@name" string values with their live counterpart.
// Only the "id" placeholder is reserved today; unknown names pass through.
func substitute(params map[string]any, id string) {
	for k, v := range params {
		s, ok := v.(string)
		if !ok || !strings.HasPrefix(s, "@") {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(s[1:]))
		if name == "id" {
			params[k] = id
		}
	}
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
