package scoringdomain

import (
	"errors"
	"fmt"
)

// Error taxonomy. Validation and rule-violation errors are returned before
// any state is touched; callers map them onto transport-level responses with
// errors.Is.
var (
	ErrValidation    = errors.New("validation failed")
	ErrRuleViolation = errors.New("rule violation")
	ErrInvalidState  = errors.New("invalid state")
	ErrNothingToUndo = errors.New("nothing to undo")
)

// NewValidationError wraps ErrValidation with a precise, actionable message.
func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NewRuleViolationError wraps ErrRuleViolation with the rule that was broken.
func NewRuleViolationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrRuleViolation, fmt.Sprintf(format, args...))
}

// NewInvalidStateError wraps ErrInvalidState with the offending lifecycle
// phase.
func NewInvalidStateError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}
