package script

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mozillazg/go-unidecode"

	"omtnames/internal/domain"
	"omtnames/internal/domain/entities"
	"omtnames/internal/ports/output"
)

var _ output.Transliterator = (*Unidecoder)(nil)

// Unidecoder transliterates the name tag to ASCII with go-unidecode.
// "東京都" becomes "Dong Jing Du", "Москва" becomes "Moskva".
type Unidecoder struct {
	decode func(string) string
}

func NewUnidecoder() *Unidecoder {
	return &Unidecoder{decode: unidecode.Unidecode}
}

// Transliterate returns "" when the feature has no name. A name with no
// ASCII rendering fails with ErrTransliteration.
func (u *Unidecoder) Transliterate(tags entities.Tags) (string, error) {
	name := strings.TrimSpace(tags.Value(entities.TagName))
	if name == "" {
		return "", nil
	}
	if !utf8.ValidString(name) {
		return "", fmt.Errorf("transliterate %q: %w", name, domain.ErrInvalidEncoding)
	}
	out := strings.TrimSpace(whitespace.ReplaceAllString(u.decode(name), " "))
	if out == "" {
		return "", fmt.Errorf("transliterate %q: %w", name, domain.ErrTransliteration)
	}
	return out, nil
}
