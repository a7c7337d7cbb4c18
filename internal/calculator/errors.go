package calculator

import (
	"errors"
	"fmt"
)

// Sentinel errors for input validation. Match with errors.Is.
var (
	ErrInvalidTotal          = errors.New("total tips must be a positive number")
	ErrNoParticipants        = errors.New("at least one participant is required")
	ErrNoEligibleHours       = errors.New("no participant has a name and positive hours")
	ErrNoEligiblePercentages = errors.New("no participant has a name and positive percentage")
	ErrUnknownMethod         = errors.New("unknown calculation method")
	ErrAmountOutOfRange      = errors.New("amounts are not representable")
)

// ValidationError is a rejected calculation. No result is produced and no
// state is changed. Message is localized for display.
type ValidationError struct {
	Err     error
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// PercentageWarning is a non-fatal inconsistency: the eligible percentages
// do not add up to 100. Amounts are still computed from each percentage.
type PercentageWarning struct {
	Total   float64
	Message string
}

func (w *PercentageWarning) String() string {
	return w.Message
}
