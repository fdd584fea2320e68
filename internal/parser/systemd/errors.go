package systemd

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAssignment = errors.New("expected Key=Value assignment")
	ErrOutsideSection    = errors.New("assignment outside of any section")
	ErrMalformedHeader   = errors.New("malformed section header")
	ErrUnknownSection    = errors.New("unknown section")
)

// ParseError reports the line a parse failure happened on.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
