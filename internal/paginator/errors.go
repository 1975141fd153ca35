package paginator

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is matched by every validation failure returned by Compute.
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError names the option that failed validation.
type ArgumentError struct {
	Field  string
	Value  int
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s=%d: %s", e.Field, e.Value, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidArgument) match any ArgumentError.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func invalid(field string, value int, reason string) error {
	return &ArgumentError{Field: field, Value: value, Reason: reason}
}
