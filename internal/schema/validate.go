// Package schema checks loosely structured profile documents against the
// canonical profile shape.
package schema

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed parsed_resume.schema.json
var parsedResumeSchema string

var (
	compileOnce sync.Once
	compiled    *gojsonschema.Schema
	compileErr  error
)

// ValidationError lists every schema violation found in a document.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Fields returns the offending field paths, handy for log output.
func (ve *ValidationError) Fields() []string {
	fields := make([]string, 0, len(ve.Errors))
	for _, err := range ve.Errors {
		fields = append(fields, err.Field)
	}
	return fields
}

func profileSchema() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled, compileErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(parsedResumeSchema))
		if compileErr != nil {
			compileErr = fmt.Errorf("compile profile schema: %w", compileErr)
		}
	})
	return compiled, compileErr
}

// ValidateProfile validates a JSON document against the profile schema.
// A *ValidationError is returned when the document is well-formed JSON that
// does not match the schema; any other error means it could not be read.
func ValidateProfile(document []byte) error {
	s, err := profileSchema()
	if err != nil {
		return err
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
