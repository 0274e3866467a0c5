package render

import (
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/schema"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/transcode"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/workflow"
)

func base(rc *Context, input schema.Input, controlType string) *Control {
	return &Control{
		Type:   controlType,
		Key:    input.FieldKey(),
		Code:   input.Default.Code,
		Title:  input.Title(rc.Locale),
		Grid:   ParseGridClass(input.Default.Class),
		Icon:   input.Config.Icon,
		Search: input.Config.IsSearch,
	}
}

func renderTextInput(rc *Context, input schema.Input, _ int) (*Control, error) {
	ctl := base(rc, input, ControlText)
	ctl.Value = rc.resolveValue(input)
	ctl.Secret = input.Config.IsPassword == "true"
	return ctl, nil
}

func renderLabel(rc *Context, input schema.Input, _ int) (*Control, error) {
	ctl := base(rc, input, ControlLabel)
	ctl.Value = rc.resolveValue(input)
	return ctl, nil
}

func renderDate(rc *Context, input schema.Input, _ int) (*Control, error) {
	ctl := base(rc, input, ControlDate)
	ctl.Value = rc.resolveValue(input)
	return ctl, nil
}

func renderSelect(rc *Context, input schema.Input, _ int) (*Control, error) {
	ctl := base(rc, input, ControlSelect)
	ctl.Value = rc.resolveValue(input)
	options, err := buildOptions(rc, input)
	if err != nil {
		return nil, err
	}
	ctl.Options = options
	return ctl, nil
}

// renderTextArea serves cTextArea and the JSON/XML editor variants. The wire
// value is a string in the input's get_data_format; it is transcoded to an
// object tree for the structured editor, with malformed payloads recovered
// as an empty object.
func renderTextArea(rc *Context, input schema.Input, _ int) (*Control, error) {
	ctl := base(rc, input, ControlTextArea)
	format := input.Config.GetDataFormat
	if format == "" {
		format = transcode.FormatJSON
	}
	ctl.Format = format

	switch v := rc.resolveValue(input).(type) {
	case map[string]any:
		// A live edit from the structured editor is already the object tree;
		// it wins over any stored wire string.
		ctl.Value = v
	case string:
		if v == "" {
			v = transcode.EmptyValue(format)
		}
		ctl.Value = transcode.Decode(v, format)
	default:
		ctl.Value = transcode.Decode(transcode.EmptyValue(format), format)
	}
	return ctl, nil
}

// renderTable shows the form's current search page.
func renderTable(rc *Context, input schema.Input, _ int) (*Control, error) {
	ctl := base(rc, input, ControlTable)
	if rows, ok := rc.ViewData[input.Default.Code].([]schema.Record); ok {
		ctl.Rows = rows
	}
	return ctl, nil
}

// renderButton wires the button to its workflow in live contexts and renders
// it disabled in previews.
func renderButton(rc *Context, input schema.Input, _ int) (*Control, error) {
	ctl := base(rc, input, ControlButton)
	ctl.Workflow = input.Default.ID
	ctl.Disabled = rc.Preview || input.Default.ID == ""
	return ctl, nil
}

func renderAdvancedSearchText(rc *Context, input schema.Input, index int) (*Control, error) {
	ctl, err := renderTextInput(rc, input, index)
	if err != nil {
		return nil, err
	}
	ctl.Search = true
	return ctl, nil
}

func renderAdvancedSearchSelect(rc *Context, input schema.Input, index int) (*Control, error) {
	ctl, err := renderSelect(rc, input, index)
	if err != nil {
		return nil, err
	}
	ctl.Search = true
	return ctl, nil
}

// workflowRunFor builds the run request a dynamic value list issues.
func workflowRunFor(rc *Context, workflowID string) workflow.RunRequest {
	return workflow.RunRequest{
		SessionToken: rc.SessionToken,
		WorkflowID:   workflowID,
		Input: workflow.SearchInput{
			CommandName: workflowID,
			IsSearch:    false,
			Parameters:  map[string]any{"language": schema.NormalizeLocale(rc.Locale)},
		},
	}
}
