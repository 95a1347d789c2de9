package models

import "fmt"

// ValidationError reports a caller-supplied field that violates the shape an
// entity requires. Both storage backends return the same validation errors so
// the route layer can map them to a 400 regardless of which backend is active.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func requiredField(field string) *ValidationError {
	return &ValidationError{Field: field, Message: "is required"}
}
