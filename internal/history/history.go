// Package history keeps the bounded, newest-first log of past tip-out
// calculations and mirrors it to a storage.Store under a single key.
//
// Lifecycle: Load once at session start, then Record/Clear. Every mutation
// rewrites the whole persisted blob, so storage always holds either the
// previous full sequence or the new full sequence.
package history

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mmynk/tipout/internal/models"
	"github.com/mmynk/tipout/internal/storage"
)

// MaxEntries is the number of calculations kept.
const MaxEntries = 10

// ErrPersist wraps storage write failures. The in-memory history is still
// updated when it is returned.
var ErrPersist = errors.New("failed to persist history")

// Store is the calculation history for one session.
type Store struct {
	mu      sync.RWMutex
	entries []models.HistoryEntry
	kv      storage.Store
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for IDs and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates an empty Store backed by kv. Call Load to restore saved history.
func New(kv storage.Store, opts ...Option) *Store {
	s := &Store{kv: kv, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory history with the persisted one.
// A missing blob gives an empty history. A corrupt blob is logged and also
// gives an empty history. Only storage read errors are returned.
func (s *Store) Load(ctx context.Context) error {
	blob, ok, err := s.kv.Get(ctx, storage.HistoryKey)
	if err != nil {
		s.replace(nil)
		return fmt.Errorf("failed to read history: %w", err)
	}
	if !ok {
		s.replace(nil)
		return nil
	}

	entries, err := decode([]byte(blob))
	if err != nil {
		slog.Warn("Discarding unreadable history", "error", err, "bytes", len(blob))
		s.replace(nil)
		return nil
	}
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	s.replace(entries)
	slog.Debug("History loaded", "entries", len(entries))
	return nil
}

// Record creates an entry for a finished calculation, prepends it and
// persists the history. On a write failure the entry is kept in memory and
// an error wrapping ErrPersist is returned along with the entry.
func (s *Store) Record(ctx context.Context, total float64, method models.Method, results []models.AllocationResult) (models.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := s.now()
	id := created.UnixMilli()
	if len(s.entries) > 0 && id <= s.entries[0].ID {
		id = s.entries[0].ID + 1
	}

	entry := models.HistoryEntry{
		ID:          id,
		Timestamp:   models.FormatTimestamp(created),
		TotalAmount: total,
		Method:      method,
		Results:     append([]models.AllocationResult(nil), results...),
	}

	next := make([]models.HistoryEntry, 0, MaxEntries)
	next = append(next, entry)
	next = append(next, s.entries...)
	if len(next) > MaxEntries {
		next = next[:MaxEntries]
	}
	s.entries = next

	if err := s.persist(ctx, next); err != nil {
		return entry, err
	}
	return entry, nil
}

// Clear empties the history and removes the persisted blob.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	if err := s.kv.Remove(ctx, storage.HistoryKey); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// List returns a copy of the history, newest first.
func (s *Store) List() []models.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.HistoryEntry(nil), s.entries...)
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Select returns the entry with id so a caller can repopulate a calculation
// from it. The stored results are returned as-is.
func (s *Store) Select(id int64) (models.HistoryEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return models.HistoryEntry{}, false
}

func (s *Store) replace(entries []models.HistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
}

// persist must be called with s.mu held.
func (s *Store) persist(ctx context.Context, entries []models.HistoryEntry) error {
	blob, err := encode(entries)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := s.kv.Set(ctx, storage.HistoryKey, string(blob)); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}
