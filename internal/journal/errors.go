package journal

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports a malformed or missing field at the boundary.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationErrors collects every field failure of one request.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (v *ValidationErrors) add(field, reason string) {
	*v = append(*v, &ValidationError{Field: field, Reason: reason})
}

// err returns nil when nothing was collected, so callers never hold a
// non-nil error interface wrapping an empty slice.
func (v ValidationErrors) err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// IsValidation reports whether err was caused by bad input.
func IsValidation(err error) bool {
	var single *ValidationError
	var many ValidationErrors
	return errors.As(err, &single) || errors.As(err, &many)
}
