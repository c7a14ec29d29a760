package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"omtnames/internal/domain/entities"
	"omtnames/internal/ports/output"
)

// Ensure Translations implements the output.TranslationProvider port.
var _ output.TranslationProvider = (*Translations)(nil)

// Source looks up the name of a feature in one language.
type Source interface {
	Lookup(tags entities.Tags, lang string) (string, bool)
}

// Translations adds name:<lang> keys for a fixed set of languages, taking each
// from the first source that knows it.
//
// Sources and the language set are fixed at construction, so a Translations
// is safe for concurrent use as long as its sources are.
type Translations struct {
	languages     []string
	transliterate bool
	sources       []Source
}

// NewTranslations validates and canonicalizes languages ("ZH-hant" becomes
// "zh-Hant") and drops duplicates, keeping the first occurrence.
func NewTranslations(languages []string, transliterate bool, sources ...Source) (*Translations, error) {
	t := &Translations{
		transliterate: transliterate,
		sources:       sources,
	}
	seen := make(map[string]bool, len(languages))
	for _, raw := range languages {
		lang, err := CanonicalLanguage(raw)
		if err != nil {
			return nil, err
		}
		if seen[lang] {
			continue
		}
		seen[lang] = true
		t.languages = append(t.languages, lang)
	}
	return t, nil
}

// CanonicalLanguage parses a BCP 47 code and returns its canonical form.
func CanonicalLanguage(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("i18n: empty language code")
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("i18n: invalid language %q: %w", raw, err)
	}
	return tag.String(), nil
}

// Languages returns the configured languages in order.
func (t *Translations) Languages() []string {
	out := make([]string, len(t.languages))
	copy(out, t.languages)
	return out
}

func (t *Translations) ShouldTransliterate() bool {
	return t.transliterate
}

// AddTranslations sets name:<lang> for every configured language that is not
// already in names. Empty translations are skipped.
func (t *Translations) AddTranslations(names *entities.Names, tags entities.Tags) {
	for _, lang := range t.languages {
		key := entities.LanguageNameKey(lang)
		if names.Has(key) {
			continue
		}
		for _, src := range t.sources {
			if v, ok := src.Lookup(tags, lang); ok && strings.TrimSpace(v) != "" {
				names.Set(key, v)
				break
			}
		}
	}
}
