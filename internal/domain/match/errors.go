package match

import (
	"errors"
	"fmt"
)

// Sentinel kinds for the engine's error taxonomy. Validation errors are
// malformed deliveries; state errors are operations attempted in the
// wrong match state. Both are deterministic and leave the ledger
// unchanged.
var (
	ErrValidation = errors.New("validation error")
	ErrState      = errors.New("state error")
)

// invalidf wraps ErrValidation with a formatted detail message.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// statef wraps ErrState with a formatted detail message.
func statef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrState, fmt.Sprintf(format, args...))
}
