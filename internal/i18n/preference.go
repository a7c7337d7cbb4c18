package i18n

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/tipout/internal/storage"
)

// Preference is the persisted display-language choice.
type Preference struct {
	store    storage.Store
	fallback Language
}

// NewPreference creates a Preference backed by store. fallback is used when
// nothing has been saved and detection gives no answer.
func NewPreference(store storage.Store, fallback Language) *Preference {
	if _, ok := catalog[fallback]; !ok {
		fallback = Fallback
	}
	return &Preference{store: store, fallback: fallback}
}

// Load returns the saved language. Without a saved value, the browser tag is
// detected; without a tag, the configured fallback is used.
// A saved value that is no longer supported is ignored.
func (p *Preference) Load(ctx context.Context, browserTag string) (Language, error) {
	saved, ok, err := p.store.Get(ctx, storage.LanguageKey)
	if err != nil {
		return p.fallback, fmt.Errorf("failed to load language preference: %w", err)
	}
	if ok {
		lang, err := ParseLanguage(saved)
		if err == nil {
			return lang, nil
		}
		slog.Warn("Ignoring unsupported saved language", "language", saved)
	}
	if browserTag != "" {
		return Detect(browserTag), nil
	}
	return p.fallback, nil
}

// Save persists lang.
func (p *Preference) Save(ctx context.Context, lang Language) error {
	if _, ok := catalog[lang]; !ok {
		return fmt.Errorf("unsupported language: %q", lang)
	}
	if err := p.store.Set(ctx, storage.LanguageKey, string(lang)); err != nil {
		return fmt.Errorf("failed to save language preference: %w", err)
	}
	return nil
}
