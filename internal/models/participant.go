package models

import "fmt"

// Participant is one person taking part in a tip-out.
// It only lives for the duration of a single calculation.
type Participant struct {
	// Name is the display name. It may be empty; equal splits use a
	// placeholder name, hours and percentage splits skip the participant.
	Name string `json:"name"`

	// Hours is the raw hours-worked text as typed into the form.
	// Only used by MethodHours.
	Hours string `json:"hours,omitempty"`

	// Percentage is the raw share text (0-100) as typed into the form.
	// Only used by MethodPercentage.
	Percentage string `json:"percentage,omitempty"`
}

// Method is the allocation policy for a calculation.
type Method string

const (
	// MethodEqual splits the total evenly across every participant.
	MethodEqual Method = "equal"
	// MethodHours splits the total proportionally to hours worked.
	MethodHours Method = "hours"
	// MethodPercentage gives each participant a fixed percentage of the total.
	MethodPercentage Method = "percentage"
)

// Methods lists every supported method in display order.
var Methods = []Method{MethodEqual, MethodHours, MethodPercentage}

// ParseMethod converts a method name into a Method.
func ParseMethod(s string) (Method, error) {
	for _, m := range Methods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown calculation method: %q", s)
}
