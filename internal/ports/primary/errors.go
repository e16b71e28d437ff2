// Package primary defines the primary ports (driving adapters) for the
// application: the service interfaces and the DTOs crossing them.
package primary

import (
	"errors"
	"fmt"
)

// ErrConflict marks state-conflict rejections: instantiating from an
// archived or inactive template, toggling completion on a status item,
// setting a status outside the item's configuration, and so on.
var ErrConflict = errors.New("state conflict")

// ConflictError wraps ErrConflict with a descriptive message.
func ConflictError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// ValidationError reports a request rejected before business logic ran.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// Invalid constructs a ValidationError for a field.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
