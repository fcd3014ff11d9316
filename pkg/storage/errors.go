package storage

import (
	"errors"
	"fmt"
)

// ErrMissingInput is matched by every MissingInputError via errors.Is.
var ErrMissingInput = errors.New("required input not found")

// MissingInputError reports a required input file that does not exist.
type MissingInputError struct {
	Path string
	Kind string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Path)
}

// Is allows errors.Is to work with MissingInputError.
func (e *MissingInputError) Is(target error) bool {
	return target == ErrMissingInput
}
