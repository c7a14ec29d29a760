package output

import "omtnames/internal/domain/entities"

// TranslationProvider adds per-language names to a resolved bundle.
// Which languages and sources are used is the provider's own policy.
type TranslationProvider interface {
	// ShouldTransliterate reports whether a Latin name may be produced by
	// transliteration when no tag carries one.
	ShouldTransliterate() bool
	// AddTranslations extends names in place using the feature's tags.
	AddTranslations(names *entities.Names, tags entities.Tags)
}
