package canvas

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/canvas.json
var canvasSchemaJSON []byte

// SchemaValidationError represents errors that occur during JSON schema validation
type SchemaValidationError struct {
	Type     string   `json:"type"`
	CanvasID string   `json:"canvas_id,omitempty"`
	Details  string   `json:"details"`
	Fields   []string `json:"fields,omitempty"`
}

func (e *SchemaValidationError) Error() string {
	if e.CanvasID != "" {
		return fmt.Sprintf("Schema validation failed for canvas '%s': %s", e.CanvasID, e.Details)
	}
	return fmt.Sprintf("Schema validation failed: %s", e.Details)
}

// SchemaValidator checks serialized canvases against the bundled JSON
// Schema (draft-07)
type SchemaValidator struct {
	once   sync.Once
	schema *gojsonschema.Schema
	err    error
}

// NewSchemaValidator creates a new schema validator. The schema is compiled
// on first use.
func NewSchemaValidator() *SchemaValidator {
	return &SchemaValidator{}
}

func (sv *SchemaValidator) compiled() (*gojsonschema.Schema, error) {
	sv.once.Do(func() {
		sv.schema, sv.err = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(canvasSchemaJSON))
		if sv.err != nil {
			sv.err = &SchemaValidationError{
				Type:    "SchemaCompilation",
				Details: fmt.Sprintf("Failed to compile canvas schema: %v", sv.err),
			}
		}
	})
	return sv.schema, sv.err
}

// ValidateCanvas serializes c and validates the result
func (sv *SchemaValidator) ValidateCanvas(c *Canvas) error {
	data, err := json.Marshal(c)
	if err != nil {
		return &SchemaValidationError{
			Type:     "InvalidJson",
			CanvasID: c.id,
			Details:  fmt.Sprintf("Failed to marshal canvas for validation: %v", err),
		}
	}
	if err := sv.ValidateJSON(data); err != nil {
		if schemaErr, ok := err.(*SchemaValidationError); ok {
			schemaErr.CanvasID = c.id
		}
		return err
	}
	return nil
}

// ValidateJSON validates a serialized canvas document
func (sv *SchemaValidator) ValidateJSON(data []byte) error {
	schema, err := sv.compiled()
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &SchemaValidationError{
			Type:    "InvalidJson",
			Details: fmt.Sprintf("Failed to read document: %v", err),
		}
	}

	if !result.Valid() {
		var errorDetails []string
		var fields []string
		for _, desc := range result.Errors() {
			errorDetails = append(errorDetails, fmt.Sprintf("  - %s", desc))
			fields = append(fields, desc.Field())
		}
		return &SchemaValidationError{
			Type:    "CanvasValidation",
			Details: strings.Join(errorDetails, "\n"),
			Fields:  fields,
		}
	}

	return nil
}
