package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed design.cue
var designSchema string

// ParseDesign decodes and validates a form-design document. The raw JSON is
// unified with the embedded CUE schema first so malformed designs fail here,
// at the boundary, rather than deep inside a renderer.
func ParseDesign(raw []byte) (*FormDesignDetail, error) {
	if err := ValidateDesign(raw); err != nil {
		return nil, err
	}
	var design FormDesignDetail
	if err := json.Unmarshal(raw, &design); err != nil {
		return nil, fmt.Errorf("decoding form design: %w", err)
	}
	return &design, nil
}

// ValidateDesign checks raw JSON against the #FormDesignDetail CUE schema.
func ValidateDesign(raw []byte) error {
	ctx := cuecontext.New()

	schemaVal := ctx.CompileString(designSchema)
	if err := schemaVal.Err(); err != nil {
		return fmt.Errorf("compiling design schema: %w", err)
	}
	def := schemaVal.LookupPath(cue.ParsePath("#FormDesignDetail"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("looking up #FormDesignDetail: %w", err)
	}

	docVal := ctx.CompileBytes(raw)
	if err := docVal.Err(); err != nil {
		return fmt.Errorf("parsing form design: %w", err)
	}

	unified := def.Unify(docVal)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid form design: %s", cueerrors.Details(err, nil))
	}
	return nil
}
