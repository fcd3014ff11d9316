package document

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

const templateSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["project_info", "functional_requirements", "non_functional_requirements"],
  "properties": {
    "project_info": {
      "type": "object",
      "required": ["name", "description"],
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "description": {"type": "string", "minLength": 1},
        "objectives": {"type": "array", "items": {"type": "string"}}
      }
    },
    "functional_requirements": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "title", "description", "priority", "acceptance_criteria"],
        "properties": {
          "id": {"type": "string", "pattern": "^F-[0-9]{3}$"},
          "title": {"type": "string", "minLength": 1},
          "description": {"type": "string", "minLength": 1},
          "priority": {"type": "string", "enum": ["High", "Medium", "Low"]},
          "acceptance_criteria": {"type": "array", "minItems": 1, "items": {"type": "string"}}
        }
      }
    },
    "non_functional_requirements": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "description"],
        "properties": {
          "id": {"type": "string", "pattern": "^NFR-[A-Z]-[0-9]{3}$"},
          "description": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`

var templateSchemaLoader = gojsonschema.NewStringLoader(templateSchemaJSON)

// TemplateViolation is a single schema finding.
type TemplateViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateTemplate checks YAML text against the requirement template schema.
// A nil slice with a nil error means the document complies.
func ValidateTemplate(src []byte) ([]TemplateViolation, error) {
	var raw any
	if err := yaml.Unmarshal(src, &raw); err != nil {
		return nil, &ParseError{Source: "yaml", Err: err}
	}
	if raw == nil {
		raw = map[string]any{}
	}

	result, err := gojsonschema.Validate(templateSchemaLoader, gojsonschema.NewGoLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	violations := make([]TemplateViolation, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, TemplateViolation{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return violations, nil
}
