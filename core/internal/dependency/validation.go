package dependency

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when an operation needs an existing record.
	ErrNotFound = errors.New("dependency does not exist yet")

	// ErrEmptyPath is returned when no path is given and none can be derived.
	ErrEmptyPath = errors.New("dependency path is empty")

	// ErrMissingURL is returned when a record would be written without a url.
	ErrMissingURL = errors.New("dependency url is required")

	// ErrInvalidValue is returned for values the manifest format cannot hold.
	ErrInvalidValue = errors.New("invalid manifest value")
)

// validateValues rejects values that would corrupt the line-based manifest.
// Whitespace inside a value is not rejected but is lost on the next load.
func validateValues(values map[string]string) error {
	for k, v := range values {
		if strings.ContainsAny(v, "\r\n") {
			return fmt.Errorf("%w: %s contains a line break", ErrInvalidValue, k)
		}
	}
	return nil
}

// validateExists is the guard edit flows run before touching the manifest.
func validateExists(exists bool, path string) error {
	if !exists {
		return fmt.Errorf("dependency %s: %w", path, ErrNotFound)
	}
	return nil
}
