package responsive

import (
	"errors"
	"fmt"
)

// Errors returned by responsive operations.
var (
	// ErrInvalidArgument indicates a required argument is missing or malformed.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptyValue indicates there was nothing to parse.
	ErrEmptyValue = errors.New("empty value")

	// ErrUnparsable indicates a value of an unsupported type or format.
	ErrUnparsable = errors.New("unparsable value")

	// ErrConstraintViolation indicates a write would hide an element on
	// every breakpoint.
	ErrConstraintViolation = errors.New("element must stay visible on at least one breakpoint")
)

// NameError reports an illegal component, variation or plugin name.
type NameError struct {
	// Field is "component", "variation" or "plugin".
	Field string
	// Value is the rejected name.
	Value string
}

// Error implements the error interface.
func (e *NameError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s name is required", e.Field)
	}
	return fmt.Sprintf("illegal %s name %q: only letters, digits and underscores are allowed", e.Field, e.Value)
}

// Is matches ErrInvalidArgument.
func (e *NameError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
