package manifest

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed plugin-schema.json
var pluginSchema []byte

// ValidationIssue is one structural problem found in a manifest.
type ValidationIssue struct {
	Field   string
	Message string
}

// ValidateBytes checks raw manifest JSON against the embedded schema.
// Returns the structural issues found; an empty slice means the manifest
// is valid.
func ValidateBytes(data []byte) ([]ValidationIssue, error) {
	schemaLoader := gojsonschema.NewBytesLoader(pluginSchema)
	docLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}

	issues := make([]ValidationIssue, 0, len(result.Errors()))
	for _, resErr := range result.Errors() {
		issues = append(issues, ValidationIssue{
			Field:   resErr.Field(),
			Message: resErr.Description(),
		})
	}
	return issues, nil
}
