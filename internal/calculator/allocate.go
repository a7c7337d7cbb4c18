// Package calculator computes how a pooled tip amount is distributed.
package calculator

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/mmynk/tipout/internal/i18n"
	"github.com/mmynk/tipout/internal/models"
)

// percentageTolerance is how far the percentage sum may drift from 100
// before a warning is raised.
const percentageTolerance = 0.01

// decimalPattern is plain decimal notation with an optional exponent.
// Hex floats, underscores and named values like "Inf" are not numbers here.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// Allocation is the output of Allocate.
type Allocation struct {
	Results []models.AllocationResult
	// Warning is set when percentages do not add up to 100.
	Warning *PercentageWarning
}

// ParseTotal parses the free-text total tips field.
// Empty, non-numeric, non-finite and non-positive values are rejected.
func ParseTotal(s string, tr *i18n.Translator) (float64, error) {
	total, ok := parsePositive(s)
	if !ok {
		return 0, invalid(ErrInvalidTotal, translator(tr), i18n.KeyValidTipsAmount)
	}
	return total, nil
}

// Allocate splits total among participants using method.
// Explanations and placeholder names are rendered with tr.
//
// Equal:      amount = total / len(participants)
// Hours:      amount = total × (hours / Σhours), eligible participants only
// Percentage: amount = total × (pct / 100), eligible participants only
//
// Inputs whose amounts overflow float64 are rejected with ErrAmountOutOfRange.
func Allocate(total float64, method models.Method, participants []models.Participant, tr *i18n.Translator) (*Allocation, error) {
	tr = translator(tr)
	if !isFinite(total) || total <= 0 {
		return nil, invalid(ErrInvalidTotal, tr, i18n.KeyValidTipsAmount)
	}

	var (
		alloc *Allocation
		err   error
	)
	switch method {
	case models.MethodEqual:
		alloc, err = allocateEqual(total, participants, tr)
	case models.MethodHours:
		alloc, err = allocateHours(total, participants, tr)
	case models.MethodPercentage:
		alloc, err = allocatePercentage(total, participants, tr)
	default:
		return nil, &ValidationError{
			Err:     ErrUnknownMethod,
			Message: fmt.Sprintf("unknown calculation method %q", method),
		}
	}
	if err != nil {
		return nil, err
	}

	// Every amount and their sum must survive JSON encoding.
	if !isFinite(TotalDistributed(alloc.Results)) {
		return nil, invalid(ErrAmountOutOfRange, tr, i18n.KeyAmountTooLarge)
	}
	return alloc, nil
}

func allocateEqual(total float64, participants []models.Participant, tr *i18n.Translator) (*Allocation, error) {
	if len(participants) == 0 {
		return nil, invalid(ErrNoParticipants, tr, i18n.KeyNoEmployees)
	}

	count := len(participants)
	perPerson := total / float64(count)
	details := tr.T(i18n.KeySplitEqually, map[string]any{"count": count})

	results := make([]models.AllocationResult, count)
	for i, p := range participants {
		name := p.Name
		if name == "" {
			name = tr.T(i18n.KeyUnnamedEmployee, nil)
		}
		results[i] = models.AllocationResult{
			Name:        name,
			Amount:      perPerson,
			Explanation: details,
		}
	}
	return &Allocation{Results: results}, nil
}

type weighted struct {
	name   string
	weight float64
}

// eligible keeps named participants whose field parses to a positive number.
func eligible(participants []models.Participant, field func(models.Participant) string) []weighted {
	var out []weighted
	for _, p := range participants {
		if p.Name == "" {
			continue
		}
		w, ok := parsePositive(field(p))
		if !ok {
			continue
		}
		out = append(out, weighted{name: p.Name, weight: w})
	}
	return out
}

func allocateHours(total float64, participants []models.Participant, tr *i18n.Translator) (*Allocation, error) {
	workers := eligible(participants, func(p models.Participant) string { return p.Hours })
	if len(workers) == 0 {
		return nil, invalid(ErrNoEligibleHours, tr, i18n.KeyValidHours)
	}

	var totalHours float64
	for _, w := range workers {
		totalHours += w.weight
	}
	perHour := total / totalHours
	if !isFinite(totalHours) || !isFinite(perHour) {
		return nil, invalid(ErrAmountOutOfRange, tr, i18n.KeyAmountTooLarge)
	}
	rate := strconv.FormatFloat(Round2(perHour), 'f', 2, 64)

	results := make([]models.AllocationResult, len(workers))
	for i, w := range workers {
		results[i] = models.AllocationResult{
			Name:   w.name,
			Amount: total * (w.weight / totalHours),
			Explanation: tr.T(i18n.KeyHoursWorked, map[string]any{
				"hours": formatNumber(w.weight),
				"rate":  rate,
			}),
		}
	}
	return &Allocation{Results: results}, nil
}

func allocatePercentage(total float64, participants []models.Participant, tr *i18n.Translator) (*Allocation, error) {
	shares := eligible(participants, func(p models.Participant) string { return p.Percentage })
	if len(shares) == 0 {
		return nil, invalid(ErrNoEligiblePercentages, tr, i18n.KeyValidPercentages)
	}

	var totalPct float64
	for _, s := range shares {
		totalPct += s.weight
	}
	if !isFinite(totalPct) {
		return nil, invalid(ErrAmountOutOfRange, tr, i18n.KeyAmountTooLarge)
	}

	alloc := &Allocation{Results: make([]models.AllocationResult, len(shares))}
	if math.Abs(totalPct-100) > percentageTolerance {
		alloc.Warning = &PercentageWarning{
			Total: totalPct,
			Message: tr.T(i18n.KeyPercentageWarning, map[string]any{
				"total": strconv.FormatFloat(totalPct, 'f', 1, 64),
			}),
		}
	}

	for i, s := range shares {
		alloc.Results[i] = models.AllocationResult{
			Name:   s.name,
			Amount: total * (s.weight / 100),
			Explanation: tr.T(i18n.KeyPercentageOfTotal, map[string]any{
				"percentage": formatNumber(s.weight),
			}),
		}
	}
	return alloc, nil
}

// parsePositive parses a trimmed decimal and accepts only finite values > 0.
func parsePositive(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !decimalPattern.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(v) || v <= 0 {
		return 0, false
	}
	return v, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// formatNumber prints the shortest decimal form ("5", "2.5").
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func translator(tr *i18n.Translator) *i18n.Translator {
	if tr == nil {
		return i18n.NewTranslator(i18n.Fallback)
	}
	return tr
}

func invalid(err error, tr *i18n.Translator, key string) *ValidationError {
	return &ValidationError{Err: err, Message: tr.T(key, nil)}
}
