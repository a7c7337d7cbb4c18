package calculator

import (
	"math"

	"github.com/mmynk/tipout/internal/models"
)

// maxCents is the magnitude above which float64 no longer holds cents.
const maxCents = 1e15

// Round2 rounds to 2 decimal places, half away from zero.
// Values too large to carry cents are returned unchanged.
func Round2(v float64) float64 {
	if math.Abs(v) >= maxCents {
		return v
	}
	return math.Round(v*100) / 100
}

// TotalDistributed sums the unrounded amounts and rounds once at the end,
// so rounding error does not compound across participants.
func TotalDistributed(results []models.AllocationResult) float64 {
	var sum float64
	for _, r := range results {
		sum += r.Amount
	}
	return Round2(sum)
}
