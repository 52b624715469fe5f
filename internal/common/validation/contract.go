package validation

import (
	"fmt"
	"os"
)

// RendererContract is the schema every parameter set handed to the pattern
// renderer must satisfy.
const RendererContract = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "GarmentParameters",
  "type": "object",
  "required": [
    "garment_type", "fit", "color", "fabric",
    "height", "bust", "waist", "hip", "shoulder", "torso_length",
    "neck_type", "sleeve_length", "style_keywords", "notes",
    "seam_allowance", "ease", "sleeve_width", "sleeve_cap_height", "hem_depth",
    "render_hints", "status"
  ],
  "properties": {
    "garment_type":      {"type": "string", "minLength": 1},
    "fit":               {"type": "string", "enum": ["Slim", "Regular", "Relaxed"]},
    "color":             {"type": "string", "pattern": "^#([0-9A-F]{6}|[0-9A-F]{3})$"},
    "fabric":            {"type": "string", "minLength": 1},
    "height":            {"type": "number", "minimum": 0, "maximum": 300},
    "bust":              {"type": "number", "minimum": 0, "maximum": 300},
    "waist":             {"type": "number", "minimum": 0, "maximum": 300},
    "hip":               {"type": "number", "minimum": 0, "maximum": 300},
    "shoulder":          {"type": "number", "exclusiveMinimum": 0, "maximum": 100},
    "torso_length":      {"type": "number", "exclusiveMinimum": 0, "maximum": 150},
    "neck_type":         {"type": "string", "minLength": 1},
    "sleeve_length":     {"type": "string", "minLength": 1},
    "style_keywords":    {"type": "array", "items": {"type": "string"}},
    "notes":             {"type": "string"},
    "seam_allowance":    {"type": "number", "exclusiveMinimum": 0},
    "ease":              {"type": "number", "minimum": 0},
    "sleeve_width":      {"type": "number", "exclusiveMinimum": 0},
    "sleeve_cap_height": {"type": "number", "exclusiveMinimum": 0},
    "hem_depth":         {"type": "number", "exclusiveMinimum": 0},
    "render_hints": {
      "type": "object",
      "required": ["roughness", "specular"],
      "properties": {
        "roughness": {"type": "number", "minimum": 0, "maximum": 1},
        "specular":  {"type": "number", "minimum": 0, "maximum": 1}
      }
    },
    "status": {"type": "string", "const": "optimized"}
  }
}`

// Contract validates parameter sets against a renderer schema.
type Contract struct {
	schema string
}

// NewContract uses the schema at path, or RendererContract when path is empty.
func NewContract(path string) (*Contract, error) {
	if path == "" {
		return &Contract{schema: RendererContract}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read contract schema %s: %w", path, err)
	}
	return &Contract{schema: string(raw)}, nil
}

// Validate checks params, which may be any JSON-marshalable value.
func (c *Contract) Validate(params interface{}) *ValidationResult {
	return ValidateAgainst(c.schema, params)
}
