package models

import "time"

// TimestampLayout is the ISO-8601 layout used for HistoryEntry.Timestamp.
// UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// HistoryEntry records one past calculation.
type HistoryEntry struct {
	// ID is derived from the creation time in Unix milliseconds.
	// It is unique within one history store but is only meant as a display key.
	ID int64 `json:"id"`

	// Timestamp is the creation time formatted with TimestampLayout.
	Timestamp string `json:"date"`

	// TotalAmount is the pooled tip amount that was split.
	TotalAmount float64 `json:"totalTips"`

	// Method is the allocation policy that produced Results.
	Method Method `json:"method"`

	// Results are the allocation results in participant order.
	Results []AllocationResult `json:"results"`
}

// FormatTimestamp formats t for HistoryEntry.Timestamp.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// CreatedAt parses Timestamp back into a time.
// Returns the zero time if the timestamp is malformed.
func (e HistoryEntry) CreatedAt() time.Time {
	t, err := time.Parse(time.RFC3339Nano, e.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}
