// Package i18n holds the English/Spanish message catalog, browser language
// detection and the persisted display-language preference.
package i18n

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// Language is a supported display language code.
type Language string

const (
	English Language = "en"
	Spanish Language = "es"
)

// Fallback is used when a key or language is missing.
const Fallback = English

var supported = []language.Tag{language.English, language.Spanish}

var matcher = language.NewMatcher(supported)

// ParseLanguage validates a language code.
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case English:
		return English, nil
	case Spanish:
		return Spanish, nil
	}
	return "", fmt.Errorf("unsupported language: %q", s)
}

// Detect maps a browser language tag or Accept-Language header
// (e.g. "es-MX", "fr;q=0.9, es;q=0.8") to a supported language.
// Anything unrecognised resolves to English.
func Detect(tag string) Language {
	if strings.TrimSpace(tag) == "" {
		return Fallback
	}
	tags, _, err := language.ParseAcceptLanguage(tag)
	if err != nil || len(tags) == 0 {
		return Fallback
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Fallback
	}
	base, _ := supported[idx].Base()
	return Language(base.String())
}

// Translator looks up catalog messages for one language.
type Translator struct {
	lang Language
}

// NewTranslator returns a Translator for lang. Unsupported languages use English.
func NewTranslator(lang Language) *Translator {
	if _, ok := catalog[lang]; !ok {
		lang = Fallback
	}
	return &Translator{lang: lang}
}

// Language returns the active language.
func (t *Translator) Language() Language {
	return t.lang
}

// T returns the message for key with {{name}} placeholders replaced from args.
// Missing keys fall back to English, then to the key itself.
func (t *Translator) T(key string, args map[string]any) string {
	msg, ok := catalog[t.lang][key]
	if !ok {
		msg, ok = catalog[Fallback][key]
	}
	if !ok {
		msg = key
	}
	return interpolate(msg, args)
}

func interpolate(msg string, args map[string]any) string {
	if len(args) == 0 {
		return msg
	}
	// Sorted for deterministic replacement when one value contains another placeholder.
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(args)*2)
	for _, name := range names {
		pairs = append(pairs, "{{"+name+"}}", fmt.Sprint(args[name]))
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}
