package manifest

import (
	"errors"
	"fmt"
)

// ErrKindMismatch is returned when a flat section is used as a named one, or
// the other way around.
var ErrKindMismatch = errors.New("section kind mismatch")

// ParseError reports a manifest line that cannot be applied.
type ParseError struct {
	Path    string
	Line    int
	Section string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: section %q: %v", e.Path, e.Line, e.Section, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func kindMismatch(section string, have, want Kind) error {
	return fmt.Errorf("%w: %q is %s, not %s", ErrKindMismatch, section, have, want)
}
