package history

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mmynk/tipout/internal/models"
)

// FormatVersion is written with every persisted history.
const FormatVersion = 1

// persisted is the on-disk shape of the history blob.
type persisted struct {
	Version int                   `json:"version"`
	Entries []models.HistoryEntry `json:"entries"`
}

func encode(entries []models.HistoryEntry) ([]byte, error) {
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	data, err := json.Marshal(persisted{Version: FormatVersion, Entries: entries})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal history: %w", err)
	}
	return data, nil
}

// decode accepts the versioned envelope and the unversioned bare array
// written by the browser calculator.
func decode(data []byte) ([]models.HistoryEntry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty history blob")
	}

	if trimmed[0] == '[' {
		var entries []models.HistoryEntry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("failed to unmarshal legacy history: %w", err)
		}
		return entries, nil
	}

	var p persisted
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}
	if p.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported history version: %d", p.Version)
	}
	return p.Entries, nil
}
