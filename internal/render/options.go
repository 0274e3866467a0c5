package render

import (
	"fmt"

	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/schema"
)

// NullOptionValue is the sentinel value of the synthetic "All" option
// prepended when an input declares isHasDataNull.
const NullOptionValue = "select_null"

// buildOptions assembles a select's option list: static json_data rows first,
// then rows from the input's dynamic source (cdlist lookup or a dynamic
// workflow run). Every row is stamped with its zero-based index at
// key_jselect before mapping, and the null option goes in front when asked
// for.
func buildOptions(rc *Context, input schema.Input) ([]Option, error) {
	rows := make([]schema.Record, 0, len(input.Config.JSONData))
	for _, row := range input.Config.JSONData {
		rows = append(rows, row)
	}

	dynamic, err := dynamicRows(rc, input)
	if err != nil {
		return nil, err
	}
	rows = append(rows, dynamic...)

	// Stamp copies, not the design's or the backend's own maps.
	for i, row := range rows {
		stamped := make(schema.Record, len(row)+1)
		for k, v := range row {
			stamped[k] = v
		}
		stamped[KeyJSelect] = i
		rows[i] = stamped
	}

	options := make([]Option, 0, len(rows)+1)
	if input.Config.IsHasDataNull == "true" {
		options = append(options, Option{
			Value: NullOptionValue,
			Label: rc.Dict.Lookup(rc.Locale, "select.all"),
		})
	}
	for _, row := range rows {
		options = append(options, Option{
			Value: rowString(row, "codeid", "value"),
			Label: rowString(row, "caption", "label"),
		})
	}
	return options, nil
}

// dynamicRows fetches the input's dynamic value list, if it declares one.
func dynamicRows(rc *Context, input schema.Input) ([]schema.Record, error) {
	switch input.Config.DataMode {
	case "cdlist":
		if input.CDList == nil || rc.Client == nil {
			return nil, nil
		}
		rows, err := rc.Client.ListCodes(rc.stdctx(), input.CDList.CdGrp, input.CDList.CdName)
		if err != nil {
			return nil, fmt.Errorf("cdlist %s/%s: %w", input.CDList.CdGrp, input.CDList.CdName, err)
		}
		return rows, nil
	case "dynamic":
		if input.Default.ID == "" || rc.Client == nil {
			return nil, nil
		}
		res, err := rc.Client.Run(rc.stdctx(), workflowRunFor(rc, input.Default.ID))
		if err != nil {
			return nil, fmt.Errorf("dynamic list %s: %w", input.Default.ID, err)
		}
		if !res.OK() {
			return nil, fmt.Errorf("dynamic list %s: %s", input.Default.ID, res.Err.Info)
		}
		return res.Items, nil
	default:
		return nil, nil
	}
}

func rowString(row schema.Record, keys ...string) string {
	for _, k := range keys {
		if s, ok := row[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
