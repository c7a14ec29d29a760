package output

import "omtnames/internal/domain/entities"

// ScriptClassifier decides whether text is written in Latin script.
// Empty text contains no non-Latin content and must not cause an error.
type ScriptClassifier interface {
	// IsPureLatin reports whether every character of text is Latin (or
	// script-neutral). Empty text is not pure Latin.
	IsPureLatin(text string) bool
	// StripLatin removes Latin letters from text and tidies what is left.
	StripLatin(text string) (string, error)
}

// Transliterator renders a feature's name with Latin characters.
// An empty result with a nil error means nothing could be produced.
type Transliterator interface {
	Transliterate(tags entities.Tags) (string, error)
}
