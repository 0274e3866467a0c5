// Package rules interprets the declarative RuleStrong constraints attached to
// a form design. Only visibility rules are defined today; evaluation is pure
// so a render pass can re-run it freely.
package rules

import (
	"strings"

	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/schema"
)

// IsFieldHidden reports whether any visibility rule hides fieldKey.
// A rule hides the field when its component_result token list contains the
// key, its event is on_change and it declares visible="false". The first
// matching hiding rule wins; no match means visible.
func IsFieldHidden(ruleSet []schema.RuleStrong, fieldKey string) bool {
	return EvaluateVisibility(ruleSet, fieldKey, nil)
}

// EvaluateVisibility is IsFieldHidden with the current form values in hand.
// Rules carrying a component/component_value condition fire only while the
// named field holds that value; rules without one behave statically, exactly
// as IsFieldHidden.
func EvaluateVisibility(ruleSet []schema.RuleStrong, fieldKey string, values map[string]any) bool {
	for _, r := range ruleSet {
		if r.Code != "visibility" {
			continue
		}
		if r.Config.ComponentEvent != "on_change" {
			continue
		}
		if r.Config.Visible != "false" {
			continue
		}
		if !targets(r.Config.ComponentResult, fieldKey) {
			continue
		}
		if r.Config.Component != "" && r.Config.ComponentValue != "" {
			cur, ok := values[r.Config.Component]
			if !ok || toString(cur) != r.Config.ComponentValue {
				continue
			}
		}
		return true
	}
	return false
}

// targets checks membership of fieldKey in a semicolon-separated token list,
// ignoring surrounding whitespace.
func targets(componentResult, fieldKey string) bool {
	for _, tok := range strings.Split(componentResult, ";") {
		if strings.TrimSpace(tok) == fieldKey {
			return true
		}
	}
	return false
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
