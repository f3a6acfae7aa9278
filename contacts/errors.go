package contacts

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every [*FieldError].
var ErrValidation = errors.New("contacts: invalid value")

// FieldError is returned when a field rejects a value.
type FieldError struct {
	Field  string // "name", "phone" or "birthday"
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("contacts: invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrValidation }
