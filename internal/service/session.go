package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmynk/tipout/internal/calculator"
	"github.com/mmynk/tipout/internal/history"
	"github.com/mmynk/tipout/internal/i18n"
	"github.com/mmynk/tipout/internal/metrics"
	"github.com/mmynk/tipout/internal/middleware"
	"github.com/mmynk/tipout/internal/models"
	"github.com/mmynk/tipout/internal/storage"
)

// ErrEntryNotFound is returned by SelectEntry for unknown IDs.
var ErrEntryNotFound = errors.New("history entry not found")

// Session owns the state of one local user: the calculation history and the
// display-language preference. Both are loaded once in NewSession and
// persisted on every mutation.
type Session struct {
	history    *history.Store
	preference *i18n.Preference
	metrics    *metrics.Metrics

	mu       sync.RWMutex
	language i18n.Language
}

// SessionOption configures a Session.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	historyOpts     []history.Option
	metrics         *metrics.Metrics
	defaultLanguage i18n.Language
	browserLanguage string
}

// WithHistoryOptions passes options to the history store.
func WithHistoryOptions(opts ...history.Option) SessionOption {
	return func(o *sessionOptions) { o.historyOpts = append(o.historyOpts, opts...) }
}

// WithMetrics records calculation counters on m.
func WithMetrics(m *metrics.Metrics) SessionOption {
	return func(o *sessionOptions) { o.metrics = m }
}

// WithDefaultLanguage sets the language used when nothing is saved or detected.
func WithDefaultLanguage(lang i18n.Language) SessionOption {
	return func(o *sessionOptions) { o.defaultLanguage = lang }
}

// WithBrowserLanguage sets the language tag to detect from when nothing is saved.
func WithBrowserLanguage(tag string) SessionOption {
	return func(o *sessionOptions) { o.browserLanguage = tag }
}

// NewSession loads history and language preference from store.
// Read failures are logged and the session starts empty with the default
// language; they never prevent calculations.
func NewSession(ctx context.Context, store storage.Store, opts ...SessionOption) *Session {
	o := sessionOptions{defaultLanguage: i18n.Fallback}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Session{
		history:    history.New(store, o.historyOpts...),
		preference: i18n.NewPreference(store, o.defaultLanguage),
		metrics:    o.metrics,
	}

	if err := s.history.Load(ctx); err != nil {
		slog.Warn("Starting with empty history", "error", err)
	}

	lang, err := s.preference.Load(ctx, o.browserLanguage)
	if err != nil {
		slog.Warn("Using default language", "error", err)
	}
	s.language = lang

	slog.Debug("Session started", "history_entries", s.history.Len(), "language", lang)
	return s
}

// CalculateInput is one submission of the tip-out form.
type CalculateInput struct {
	// TotalTips is the raw total field text.
	TotalTips    string
	Method       models.Method
	Participants []models.Participant
	// Language overrides the session language for this calculation when set.
	Language i18n.Language
}

// CalculateOutput is a successful calculation.
type CalculateOutput struct {
	Results          []models.AllocationResult
	TotalDistributed float64
	Warning          *calculator.PercentageWarning
	Entry            models.HistoryEntry
	// PersistErr is set when the history could not be written. The
	// calculation and the in-memory history are still valid.
	PersistErr error
}

// Calculate validates the form, allocates the tips and records the result.
// A *calculator.ValidationError means nothing was computed or recorded.
func (s *Session) Calculate(ctx context.Context, in CalculateInput) (*CalculateOutput, error) {
	log := logger(ctx)
	tr := s.Translator()
	if in.Language != "" {
		tr = i18n.NewTranslator(in.Language)
	}

	total, err := calculator.ParseTotal(in.TotalTips, tr)
	if err != nil {
		s.countValidationFailure(log, err)
		return nil, err
	}

	alloc, err := calculator.Allocate(total, in.Method, in.Participants, tr)
	if err != nil {
		s.countValidationFailure(log, err)
		return nil, err
	}

	out := &CalculateOutput{
		Results:          alloc.Results,
		TotalDistributed: calculator.TotalDistributed(alloc.Results),
		Warning:          alloc.Warning,
	}
	if alloc.Warning != nil {
		log.Warn("Percentages do not add up to 100", "total_percentage", alloc.Warning.Total)
		if s.metrics != nil {
			s.metrics.PercentageWarnings.Inc()
		}
	}

	entry, err := s.history.Record(ctx, total, in.Method, alloc.Results)
	out.Entry = entry
	if err != nil {
		log.Warn("History not saved", "entry_id", entry.ID, "error", err)
		if s.metrics != nil {
			s.metrics.PersistFailures.Inc()
		}
		out.PersistErr = err
	}

	if s.metrics != nil {
		s.metrics.Calculations.WithLabelValues(string(in.Method)).Inc()
	}
	log.Info("Calculation completed",
		"method", in.Method,
		"total", total,
		"results", len(alloc.Results),
		"entry_id", entry.ID,
	)
	return out, nil
}

// ListHistory returns past calculations, newest first.
func (s *Session) ListHistory() []models.HistoryEntry {
	return s.history.List()
}

// ClearHistory removes every past calculation.
func (s *Session) ClearHistory(ctx context.Context) error {
	if err := s.history.Clear(ctx); err != nil {
		if s.metrics != nil {
			s.metrics.PersistFailures.Inc()
		}
		return err
	}
	logger(ctx).Info("History cleared")
	return nil
}

// SelectEntry returns a past calculation so the caller can repopulate the form.
func (s *Session) SelectEntry(id int64) (models.HistoryEntry, error) {
	entry, ok := s.history.Select(id)
	if !ok {
		return models.HistoryEntry{}, fmt.Errorf("%w: %d", ErrEntryNotFound, id)
	}
	return entry, nil
}

// Language returns the active display language.
func (s *Session) Language() i18n.Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

// Translator returns a translator for the active display language.
func (s *Session) Translator() *i18n.Translator {
	return i18n.NewTranslator(s.Language())
}

// ResolveLanguage re-evaluates the display language for a browser tag:
// the saved preference wins, otherwise the tag is detected. The result
// becomes the session language but is not saved.
func (s *Session) ResolveLanguage(ctx context.Context, browserTag string) i18n.Language {
	if browserTag == "" {
		return s.Language()
	}
	lang, err := s.preference.Load(ctx, browserTag)
	if err != nil {
		logger(ctx).Warn("Keeping current language", "error", err)
		return s.Language()
	}
	s.mu.Lock()
	s.language = lang
	s.mu.Unlock()
	return lang
}

// SetLanguage switches and persists the display language. The session keeps
// the new language even if saving fails.
func (s *Session) SetLanguage(ctx context.Context, lang i18n.Language) error {
	lang, err := i18n.ParseLanguage(string(lang))
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.language = lang
	s.mu.Unlock()
	return s.preference.Save(ctx, lang)
}

// validationReason maps validation errors to a metrics label.
func validationReason(err error) string {
	switch {
	case errors.Is(err, calculator.ErrInvalidTotal):
		return "invalid_total"
	case errors.Is(err, calculator.ErrNoParticipants):
		return "no_participants"
	case errors.Is(err, calculator.ErrNoEligibleHours):
		return "no_eligible_hours"
	case errors.Is(err, calculator.ErrNoEligiblePercentages):
		return "no_eligible_percentages"
	case errors.Is(err, calculator.ErrUnknownMethod):
		return "unknown_method"
	case errors.Is(err, calculator.ErrAmountOutOfRange):
		return "amount_out_of_range"
	default:
		return "other"
	}
}

func (s *Session) countValidationFailure(log *slog.Logger, err error) {
	log.Debug("Calculation rejected", "error", err)
	if s.metrics != nil {
		s.metrics.ValidationFailures.WithLabelValues(validationReason(err)).Inc()
	}
}

// logger tags session logs with the RPC request ID when ctx carries one.
func logger(ctx context.Context) *slog.Logger {
	if id := middleware.GetRequestID(ctx); id != "" {
		return slog.Default().With("request_id", id)
	}
	return slog.Default()
}
