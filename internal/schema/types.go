// Package schema provides Go structs for the form-design documents delivered
// by the system-service. A form design describes one console page as a tree of
// layouts, views and inputs, together with visibility rules, master-data
// bindings and per-locale labels.
package schema

import (
	"strings"
)

// FormDesignDetail is the top-level design for a single console page.
// Immutable once fetched; re-fetched per navigation.
type FormDesignDetail struct {
	FormID     string       `json:"form_id"`
	Info       FormInfo     `json:"info"`
	ListLayout []Layout     `json:"list_layout"`
	ListRule   []RuleStrong `json:"list_rule,omitempty"`
}

// FormInfo carries the localized title/description of a form and its workflow
// binding. Data is the workflow id executed when the form loads.
type FormInfo struct {
	Data string     `json:"data,omitempty"`
	Lang *LangBlock `json:"lang,omitempty"`
}

// LangBlock maps a 2-letter locale code to a display string, per text kind.
type LangBlock struct {
	Title       map[string]string `json:"title,omitempty"`
	Description map[string]string `json:"description,omitempty"`
}

// Layout is a logical grouping of views, e.g. one tab page.
type Layout struct {
	CodeHidden string `json:"codeHidden,omitempty"`
	HaveAuthen string `json:"haveauthen,omitempty"`
	ListView   []View `json:"list_view"`
}

// View is a named, possibly-tabbed group of inputs within a layout.
// IsTab and IsBox arrive as the strings "true"/"false" on the wire.
type View struct {
	ID        string     `json:"id,omitempty"`
	Code      string     `json:"code"`
	Name      string     `json:"name,omitempty"`
	IsTab     string     `json:"isTab,omitempty"`
	IsBox     string     `json:"isBox,omitempty"`
	Lang      *LangBlock `json:"lang,omitempty"`
	ListInput []Input    `json:"list_input"`
}

// Tabbed reports whether the view renders inside the tab strip.
func (v View) Tabbed() bool { return v.IsTab == "true" }

// Boxed reports whether the view wraps its inputs in a titled bordered panel.
func (v View) Boxed() bool { return v.IsBox == "true" }

// Title returns the view title for the given locale, or "" when the locale
// has no translation. Missing locales fall back silently; callers render no
// title rather than a key name.
func (v View) Title(locale string) string {
	if v.Lang == nil {
		return ""
	}
	return v.Lang.Title[locale]
}

// Input is a single schema-described field or control.
type Input struct {
	InputType string       `json:"inputtype"`
	Default   InputDefault `json:"default"`
	Config    InputConfig  `json:"config"`
	Lang      *LangBlock   `json:"lang,omitempty"`
	CDList    *CDListRef   `json:"cdlist,omitempty"`
	Value     string       `json:"value,omitempty"`
	IsKey     bool         `json:"iskey,omitempty"`
	IsHidden  bool         `json:"ishidden,omitempty"`
}

// InputDefault identifies the field and its grid placement.
type InputDefault struct {
	Code       string `json:"code"`
	CodeHidden string `json:"codeHidden,omitempty"`
	Name       string `json:"name,omitempty"`
	ID         string `json:"id,omitempty"`
	Class      string `json:"class,omitempty"`
}

// InputConfig carries the data source, search and validation flags of an
// input. StructableRead is a dotted "table.column" path; its last segment is
// the key used to read and write the field's value in the form-data record.
type InputConfig struct {
	StructableRead string           `json:"structable_read,omitempty"`
	DataMode       string           `json:"data_mode,omitempty"`
	GetDataFormat  string           `json:"get_data_format,omitempty"` // "xml" or "json"
	DataDefault    *bool            `json:"data_default,omitempty"`
	IsPassword     string           `json:"is_password,omitempty"`
	IsSearch       bool             `json:"isSearch,omitempty"`
	IsHasDataNull  string           `json:"isHasDataNull,omitempty"`
	Icon           string           `json:"icon,omitempty"`
	JSONData       []map[string]any `json:"json_data,omitempty"`
}

// CDListRef names a common-code lookup: all codes in group CdGrp with code
// name CdName.
type CDListRef struct {
	CdGrp  string `json:"cdgrp"`
	CdName string `json:"cdname"`
}

// FieldKey returns the key under which this input's value lives in the
// generic form-data record: the last dotted segment of structable_read when
// present, otherwise the input's default code.
func (in Input) FieldKey() string {
	if in.Config.StructableRead != "" {
		parts := strings.Split(in.Config.StructableRead, ".")
		return parts[len(parts)-1]
	}
	return in.Default.Code
}

// FindInput looks up an input by its field key across every layout and view.
func (d *FormDesignDetail) FindInput(fieldKey string) (Input, bool) {
	for _, layout := range d.ListLayout {
		for _, view := range layout.ListView {
			for _, input := range view.ListInput {
				if input.FieldKey() == fieldKey {
					return input, true
				}
			}
		}
	}
	return Input{}, false
}

// Title returns the input's label for the given locale, falling back to the
// default name when no translation exists.
func (in Input) Title(locale string) string {
	if in.Lang != nil {
		if t := in.Lang.Title[locale]; t != "" {
			return t
		}
	}
	return in.Default.Name
}

// DefaultAllowed reports whether an empty backing value may still render the
// input. data_default=false means "suppress empty, non-defaultable field".
func (in Input) DefaultAllowed() bool {
	return in.Config.DataDefault == nil || *in.Config.DataDefault
}

// RuleStrong is a declarative constraint tied to field codes and a triggering
// event. Only code "visibility" is interpreted today.
type RuleStrong struct {
	Code   string     `json:"code"`
	Config RuleConfig `json:"config"`
}

// RuleConfig holds the rule's target fields and outcome. ComponentResult is a
// semicolon-separated list of field codes the rule applies to.
type RuleConfig struct {
	ComponentResult string `json:"component_result"`
	ComponentEvent  string `json:"component_event"`
	Visible         string `json:"visible"`
	// Component and ComponentValue extend the static contract with a live
	// value condition: when both are set, the rule fires only while the named
	// field currently holds that value.
	Component      string `json:"component,omitempty"`
	ComponentValue string `json:"component_value,omitempty"`
}

// PageData is the paginated result envelope returned by backend search calls.
type PageData[T any] struct {
	Items     []T `json:"items"`
	PageIndex int `json:"page_index"`
	PageSize  int `json:"page_size"`
}

// Record is a generic form-data row.
type Record = map[string]any

// TotalCount reads the running total the backend stamps on the first item of
// a page. Zero when the page is empty or the item carries no total.
func (p PageData[T]) TotalCount() int {
	if len(p.Items) == 0 {
		return 0
	}
	item, ok := any(p.Items[0]).(map[string]any)
	if !ok {
		return 0
	}
	switch n := item["total_count"].(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return 0
}

// Locales is the closed set of console locales.
var Locales = []string{"en", "vi", "la"}

// NormalizeLocale maps an unknown or empty locale to "en".
func NormalizeLocale(locale string) string {
	for _, l := range Locales {
		if locale == l {
			return l
		}
	}
	return "en"
}
