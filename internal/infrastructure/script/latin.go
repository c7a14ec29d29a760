// Package script classifies and converts text by writing system.
package script

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"omtnames/internal/domain"
	"omtnames/internal/ports/output"
)

var _ output.ScriptClassifier = (*LatinClassifier)(nil)

// isLatinText accepts runes that carry no script of their own (digits,
// punctuation such as ’ – « », spaces, combining marks) and Latin letters.
func isLatinText(r rune) bool {
	return !unicode.IsLetter(r) || unicode.Is(unicode.Latin, r)
}

// isLatinLetter matches the letters removed when extracting the non-Latin
// part of a name.
func isLatinLetter(r rune) bool {
	return unicode.IsLetter(r) && unicode.Is(unicode.Latin, r)
}

var (
	emptyBrackets = regexp.MustCompile(`\([ -.]*\)|\[[ -.]*\]`)
	edgeJunk      = regexp.MustCompile(`^[\s./-]+|[\s./-]+$`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// TransformFunc applies a transformer to a string, like transform.String.
type TransformFunc func(t transform.Transformer, s string) (string, int, error)

// LatinClassifier implements output.ScriptClassifier with x/text rune sets.
type LatinClassifier struct {
	latin   runes.Set
	letters runes.Set
	// transform is the injection point for the Latin letter removal.
	transform TransformFunc
}

func NewLatinClassifier() *LatinClassifier {
	return &LatinClassifier{
		latin:     runes.Predicate(isLatinText),
		letters:   runes.Predicate(isLatinLetter),
		transform: transform.String,
	}
}

// IsPureLatin reports whether text is non-empty, valid UTF-8 and every letter
// in it is Latin script. "St. John’s" and "Provence–Alpes" are pure Latin.
func (c *LatinClassifier) IsPureLatin(text string) bool {
	if text == "" || !utf8.ValidString(text) {
		return false
	}
	for _, r := range text {
		if !c.latin.Contains(r) {
			return false
		}
	}
	return true
}

// StripLatin removes Latin letters from text, then drops brackets left empty,
// trims leading and trailing spaces, dots, slashes and dashes, and collapses
// runs of whitespace. Text without any Latin letter is only trimmed.
//
//	"Москва (Moscow)" -> "Москва"
func (c *LatinClassifier) StripLatin(text string) (string, error) {
	if text == "" {
		return "", nil
	}
	if !utf8.ValidString(text) {
		return "", fmt.Errorf("strip latin: %w", domain.ErrInvalidEncoding)
	}
	if !strings.ContainsFunc(text, c.letters.Contains) {
		return strings.TrimSpace(text), nil
	}

	result, _, err := c.transform(runes.Remove(c.letters), text)
	if err != nil {
		return "", fmt.Errorf("strip latin: %w", err)
	}
	result = emptyBrackets.ReplaceAllString(result, "")
	result = edgeJunk.ReplaceAllString(result, "")
	return whitespace.ReplaceAllString(result, " "), nil
}
