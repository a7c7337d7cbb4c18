package models

// AllocationResult is one participant's calculated share of the tips.
// This is the output of the allocation algorithm and is never modified afterwards.
type AllocationResult struct {
	// Name is the participant name (or the localized placeholder for unnamed
	// participants in an equal split).
	Name string `json:"name"`

	// Amount is the unrounded share in currency units.
	// Round only for display; see calculator.Round2.
	Amount float64 `json:"amount"`

	// Explanation describes how the amount was derived,
	// e.g. "5 hours × $15.00/hour".
	Explanation string `json:"details"`
}
