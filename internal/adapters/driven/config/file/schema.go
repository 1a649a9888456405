package file

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// sourcesSchema constrains the sources document. Platform keys are left open
// so unknown platforms can be skipped with a warning instead of failing.
const sourcesSchema = `{
  "type": "object",
  "required": ["sources"],
  "properties": {
    "sources": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "platform":          {"type": "string"},
          "priority":          {"type": "integer", "minimum": 1, "maximum": 10},
          "max_results":       {"type": "integer", "minimum": 0},
          "search_parameters": {"type": "object"},
          "rate_limit_delay":  {"type": "number", "minimum": 0},
          "enabled":           {"type": "boolean"}
        }
      }
    }
  }
}`

var sourcesSchemaLoader = gojsonschema.NewStringLoader(sourcesSchema)

// validateSources checks a raw sources document against sourcesSchema.
func validateSources(data []byte) error {
	result, err := gojsonschema.Validate(sourcesSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("schema validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}
