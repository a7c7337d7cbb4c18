// Package api defines the messages of the tipout.v1.TipoutService Connect API
// and the JSON codec they travel with.
package api

import (
	"github.com/mmynk/tipout/internal/models"
)

// Employee is one form row. Hours and Percentage are the raw field text.
type Employee struct {
	Name       string `json:"name"`
	Hours      string `json:"hours,omitempty"`
	Percentage string `json:"percentage,omitempty"`
}

// Result is one participant's share.
type Result struct {
	Name    string  `json:"name"`
	Amount  float64 `json:"amount"`
	Details string  `json:"details"`
}

// HistoryEntry is a past calculation.
type HistoryEntry struct {
	ID        int64    `json:"id"`
	Date      string   `json:"date"`
	TotalTips float64  `json:"totalTips"`
	Method    string   `json:"method"`
	Results   []Result `json:"results"`
}

type CalculateRequest struct {
	// TotalTips is the raw total field text.
	TotalTips string     `json:"totalTips"`
	Method    string     `json:"method"`
	Employees []Employee `json:"employees"`
	// Language overrides the saved preference for this call's explanations.
	Language string `json:"language,omitempty"`
}

type CalculateResponse struct {
	Results          []Result      `json:"results"`
	TotalDistributed float64       `json:"totalDistributed"`
	Warning          string        `json:"warning,omitempty"`
	Entry            *HistoryEntry `json:"entry,omitempty"`
	// PersistError is set when the calculation succeeded but history could
	// not be written to local storage.
	PersistError string `json:"persistError,omitempty"`
}

type ListHistoryRequest struct{}

type ListHistoryResponse struct {
	Entries []HistoryEntry `json:"entries"`
}

type ClearHistoryRequest struct{}

type ClearHistoryResponse struct{}

type SelectEntryRequest struct {
	ID int64 `json:"id"`
}

type SelectEntryResponse struct {
	Entry HistoryEntry `json:"entry"`
}

type GetLanguageRequest struct {
	// BrowserLanguage is navigator.language or an Accept-Language value,
	// used when no preference has been saved.
	BrowserLanguage string `json:"browserLanguage,omitempty"`
}

type GetLanguageResponse struct {
	Language string `json:"language"`
}

type SetLanguageRequest struct {
	Language string `json:"language"`
}

type SetLanguageResponse struct {
	Language string `json:"language"`
}

// FromModelEntry converts a stored history entry.
func FromModelEntry(e models.HistoryEntry) HistoryEntry {
	return HistoryEntry{
		ID:        e.ID,
		Date:      e.Timestamp,
		TotalTips: e.TotalAmount,
		Method:    string(e.Method),
		Results:   FromModelResults(e.Results),
	}
}

// FromModelResults converts allocation results.
func FromModelResults(results []models.AllocationResult) []Result {
	out := make([]Result, len(results))
	for i, r := range results {
		out[i] = Result{Name: r.Name, Amount: r.Amount, Details: r.Explanation}
	}
	return out
}

// ToModelParticipants converts form rows into calculator input.
func ToModelParticipants(employees []Employee) []models.Participant {
	out := make([]models.Participant, len(employees))
	for i, e := range employees {
		out[i] = models.Participant{Name: e.Name, Hours: e.Hours, Percentage: e.Percentage}
	}
	return out
}
