// Package util holds the minimal JSON-Schema subset validation used by the
// tool layer. Only the shapes the memory tools declare are supported: object
// schemas with typed properties and a required list.
package util

import "fmt"

// ValidationError reports a single argument that failed validation.
type ValidationError struct {
	Field   string `json:"field"`
	Value   any    `json:"value,omitempty"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// ValidateParameters checks args against a minimal JSON-Schema-like object
// schema: required fields must be present and provided fields must match
// their declared type. Unknown fields are allowed.
func ValidateParameters(args map[string]any, schema map[string]any) error {
	if required, ok := schema["required"].([]any); ok {
		for _, r := range required {
			name, ok := r.(string)
			if !ok {
				continue
			}
			if _, present := args[name]; !present {
				return &ValidationError{Field: name, Message: "required field is missing"}
			}
		}
	}
	if required, ok := schema["required"].([]string); ok {
		for _, name := range required {
			if _, present := args[name]; !present {
				return &ValidationError{Field: name, Message: "required field is missing"}
			}
		}
	}

	properties, _ := schema["properties"].(map[string]any)
	for name, value := range args {
		prop, ok := properties[name].(map[string]any)
		if !ok {
			continue
		}
		declared, _ := prop["type"].(string)
		if !matchesType(value, declared) {
			return &ValidationError{
				Field:   name,
				Value:   value,
				Message: fmt.Sprintf("expected type %s, got %T", declared, value),
			}
		}
	}
	return nil
}

// matchesType reports whether a decoded JSON value satisfies a schema type.
// JSON numbers decode as float64, so integer checks accept whole floats.
func matchesType(value any, declared string) bool {
	if value == nil {
		return true
	}
	switch declared {
	case "string":
		_, ok := value.(string)
		return ok
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "integer":
		switch v := value.(type) {
		case int, int64:
			return true
		case float64:
			return v == float64(int64(v))
		}
		return false
	case "number":
		switch value.(type) {
		case int, int64, float64:
			return true
		}
		return false
	case "array":
		_, ok := value.([]any)
		return ok
	case "object":
		_, ok := value.(map[string]any)
		return ok
	}
	return true
}
