// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
)

// Keys used by Tipout.
const (
	// HistoryKey holds the serialized calculation history.
	HistoryKey = "tipoutHistory"
	// LanguageKey holds the display-language preference.
	LanguageKey = "language"
)

// Store defines a string key-value store on the local device.
// This abstraction allows swapping storage backends (SQLite, in-memory)
// without changing the history or preference code.
type Store interface {
	// Get returns the value stored under key.
	// The bool is false if nothing is stored; that is not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
