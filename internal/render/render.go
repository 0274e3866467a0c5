// Package render interprets form-design inputs into a framework-agnostic
// control tree. Dispatch is a registry keyed by the input's type string so
// new control types register without touching the dispatcher; each renderer
// resolves the input's current value, localizes its title and emits exactly
// one control, or nil when the field is hidden or suppressed.
package render

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/dictionary"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/rules"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/schema"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/workflow"
)

// Control types emitted by the built-in renderers.
const (
	ControlText        = "text"
	ControlLabel       = "label"
	ControlDate        = "date"
	ControlSelect      = "select"
	ControlTextArea    = "textarea"
	ControlTable       = "table"
	ControlButton      = "button"
	ControlUnsupported = "unsupported"
)

// KeyJSelect is the key each select row is stamped with: its zero-based
// index, used by the console for stable option keying.
const KeyJSelect = "key_jselect"

// Control is one rendered input, ready for the console to draw.
type Control struct {
	Type     string         `json:"type"`
	Key      string         `json:"key"`
	Code     string         `json:"code"`
	Title    string         `json:"title,omitempty"`
	Value    any            `json:"value,omitempty"`
	Options  []Option       `json:"options,omitempty"`
	Rows     []schema.Record `json:"rows,omitempty"`
	Grid     GridProps      `json:"grid"`
	Format   string         `json:"format,omitempty"`
	Secret   bool           `json:"secret,omitempty"`
	Search   bool           `json:"search,omitempty"`
	Disabled bool           `json:"disabled,omitempty"`
	Icon     string         `json:"icon,omitempty"`
	Workflow string         `json:"workflow,omitempty"`
	Message  string         `json:"message,omitempty"`
}

// Option is one entry of a select control.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Context carries everything a renderer may need for one render pass.
// FormState holds the live edited values keyed by field key; ViewData holds
// the server-supplied record keyed by input code.
type Context struct {
	Ctx          context.Context
	FormID       string
	Locale       string
	RecordID     string
	SessionToken string
	Preview      bool

	Rules     []schema.RuleStrong
	FormState map[string]any
	ViewData  map[string]any

	Dict   *dictionary.Dictionary
	Client workflow.Client
}

func (c *Context) stdctx() context.Context {
	if c.Ctx != nil {
		return c.Ctx
	}
	return context.Background()
}

// RenderFunc renders one input into one control.
type RenderFunc func(rc *Context, input schema.Input, index int) (*Control, error)

// Registry dispatches inputs to renderers by type string.
type Registry struct {
	mu     sync.RWMutex
	byType map[string]RenderFunc
}

// NewRegistry returns a registry with all built-in input types registered.
func NewRegistry() *Registry {
	r := &Registry{byType: map[string]RenderFunc{}}
	r.Register("cTextInput", renderTextInput)
	r.Register("cLabel", renderLabel)
	r.Register("cDate", renderDate)
	r.Register("jSelect", renderSelect)
	r.Register("cTextArea", renderTextArea)
	r.Register("jSONEditor", renderTextArea)
	r.Register("xmlEditor", renderTextArea)
	r.Register("cTableDefault", renderTable)
	r.Register("cButton", renderButton)
	r.Register("cTextInputAdvancedSearch", renderAdvancedSearchText)
	r.Register("jSelectAdvancedSearch", renderAdvancedSearchSelect)
	return r
}

// Register binds a renderer to an input type, replacing any previous one.
func (r *Registry) Register(inputType string, fn RenderFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byType[inputType] = fn
}

// Render produces the control for one input, or nil when the input is hidden
// by a visibility rule, statically hidden, or suppressed as an empty
// non-defaultable field. Unknown input types fail soft: the console gets a
// visible "unsupported" placeholder instead of a broken form.
func (r *Registry) Render(rc *Context, input schema.Input, index int) *Control {
	if input.IsHidden {
		return nil
	}
	if rules.EvaluateVisibility(rc.Rules, input.FieldKey(), rc.FormState) {
		return nil
	}
	if !input.DefaultAllowed() && isEmpty(rc.backingValue(input)) {
		return nil
	}

	r.mu.RLock()
	fn, ok := r.byType[input.InputType]
	r.mu.RUnlock()
	if !ok {
		return &Control{
			Type:    ControlUnsupported,
			Key:     input.FieldKey(),
			Code:    input.Default.Code,
			Title:   input.Title(rc.Locale),
			Message: rc.Dict.Lookup(rc.Locale, "input.unsupported") + ": " + input.InputType,
			Grid:    ParseGridClass(input.Default.Class),
		}
	}

	ctl, err := fn(rc, input, index)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"form":  rc.FormID,
			"input": input.Default.Code,
			"type":  input.InputType,
		}).Warn("renderer failed, emitting placeholder")
		return &Control{
			Type:    ControlUnsupported,
			Key:     input.FieldKey(),
			Code:    input.Default.Code,
			Title:   input.Title(rc.Locale),
			Message: rc.Dict.Lookup(rc.Locale, "error.section"),
			Grid:    ParseGridClass(input.Default.Class),
		}
	}
	return ctl
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
