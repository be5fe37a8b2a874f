package validation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	apperrors "readiness-workers/internal/common/errors"

	"github.com/xeipuuv/gojsonschema"
)

// Issue is a single schema violation.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Result collects every schema violation found in a document, sorted by field.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// FirstError returns the first issue as a ValidationError, or nil when valid.
func (r *Result) FirstError() error {
	if r.Valid || len(r.Issues) == 0 {
		return nil
	}
	return apperrors.NewValidationError(r.Issues[0].Field, r.Issues[0].Message)
}

// GetErrorMessages returns a simple list of error messages.
func (r *Result) GetErrorMessages() []string {
	messages := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		messages[i] = fmt.Sprintf("%s: %s", issue.Field, issue.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for a specific field or its children.
func (r *Result) HasErrors(field string) bool {
	for _, issue := range r.Issues {
		if issue.Field == field || strings.HasPrefix(issue.Field, field+".") {
			return true
		}
	}
	return false
}

// SchemaValidator checks job variables against a compiled JSON schema.
// A compiled schema is read-only and safe for concurrent use.
type SchemaValidator struct {
	schema *gojsonschema.Schema
}

// NewSchemaValidator compiles a JSON schema given as a decoded map.
func NewSchemaValidator(schema map[string]interface{}) (*SchemaValidator, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &SchemaValidator{schema: compiled}, nil
}

// Check validates a raw JSON document and reports every violation.
func (s *SchemaValidator) Check(document []byte) (*Result, error) {
	if !json.Valid(document) {
		return nil, apperrors.NewValidationError("variables", "must be a valid JSON object")
	}

	res, err := s.schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return nil, apperrors.NewValidationError("variables", err.Error())
	}

	out := &Result{Valid: res.Valid()}
	for _, desc := range res.Errors() {
		out.Issues = append(out.Issues, Issue{
			Field:   issueField(desc),
			Message: desc.Description(),
			Code:    desc.Type(),
		})
	}
	sort.SliceStable(out.Issues, func(i, j int) bool {
		return out.Issues[i].Field < out.Issues[j].Field
	})
	return out, nil
}

// Validate returns the first violation as a ValidationError.
func (s *SchemaValidator) Validate(document []byte) error {
	res, err := s.Check(document)
	if err != nil {
		return err
	}
	return res.FirstError()
}

func issueField(desc gojsonschema.ResultError) string {
	field := strings.TrimPrefix(desc.Context().String(), "(root)")
	field = strings.TrimPrefix(field, ".")
	if desc.Type() == "required" {
		if prop, ok := desc.Details()["property"].(string); ok {
			if field == "" {
				return prop
			}
			return field + "." + prop
		}
	}
	if field == "" {
		return "variables"
	}
	return field
}
