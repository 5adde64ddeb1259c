package engine

import (
	"errors"
	"fmt"
	"strings"
)

// InputError reports caller-input contract violations detected before an
// engine runs (invalid gearmotor selection inputs, unknown station, and so
// on). It carries every violation found in one pass so the caller can show
// all of them at once.
//
// InputError is distinct from domain-result issues: "nothing qualifies" is
// never an InputError.
type InputError struct {
	// Op names the operation that rejected its inputs.
	Op string

	// Violations holds one human-readable message per violated rule.
	Violations []string
}

// Error implements the error interface.
func (e *InputError) Error() string {
	if len(e.Violations) == 1 {
		return fmt.Sprintf("%s: invalid input: %s", e.Op, e.Violations[0])
	}
	return fmt.Sprintf("%s: invalid input: %s", e.Op, strings.Join(e.Violations, "; "))
}

// NewInputError creates an InputError for the given operation.
func NewInputError(op string, violations []string) *InputError {
	return &InputError{Op: op, Violations: violations}
}

// IsInputError returns true if the error is a caller-input violation.
// Uses errors.As to handle wrapped errors.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
