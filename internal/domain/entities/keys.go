package entities

import (
	"regexp"
	"strings"
)

// Tag keys read from a feature.
const (
	TagName     = "name"
	TagIntName  = "int_name"
	TagNameEn   = "name:en"
	TagNameDe   = "name:de"
	TagWikidata = "wikidata"
)

const nameKeyPrefix = "name:"

// languageNameKey matches keys such as name:fr, name:zh-Hant or name:sr-Latn.
var languageNameKey = regexp.MustCompile(`^name:[a-z]{2,3}(-[a-zA-Z]{4})?([-_](x-)?[a-z]{2,})?$`)

// IsLanguageNameKey reports whether key is a language-tagged name key.
func IsLanguageNameKey(key string) bool {
	return languageNameKey.MatchString(key)
}

// LanguageNameKey returns the name key for a language code, e.g. "name:fr".
func LanguageNameKey(lang string) string {
	return nameKeyPrefix + lang
}

// LanguageOf returns the language part of a language-tagged name key.
func LanguageOf(key string) (string, bool) {
	if !IsLanguageNameKey(key) {
		return "", false
	}
	return strings.TrimPrefix(key, nameKeyPrefix), true
}
