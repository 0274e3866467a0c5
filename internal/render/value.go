package render

import (
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/schema"
)

// resolveValue applies the value precedence every renderer shares: the live
// form-state value for the field key wins, else the server-supplied
// view-data value at the input's code, else nil; the caller supplies any
// type-specific default.
func (c *Context) resolveValue(input schema.Input) any {
	if v, ok := c.FormState[input.FieldKey()]; ok && v != nil {
		return v
	}
	return c.backingValue(input)
}

// backingValue is the server-side value an input shows before any edit; the
// data_default suppression policy looks at this, not at live edits.
func (c *Context) backingValue(input schema.Input) any {
	if v, ok := c.ViewData[input.Default.Code]; ok {
		return v
	}
	if input.Value != "" {
		return input.Value
	}
	return nil
}
