package document

import "fmt"

// ParseError reports a structured document that could not be decoded.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s parse failed: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
