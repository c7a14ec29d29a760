package application

import (
	"iter"
	"log/slog"
	"slices"

	"omtnames/internal/domain/entities"
	"omtnames/internal/ports/input"
	"omtnames/internal/ports/output"
)

var _ input.NameUseCase = (*NameResolver)(nil)

// Where name:latin came from, as reported to an Observer.
const (
	LatinFromName           = "name"
	LatinFromTag            = "tag"
	LatinFromTransliterated = "transliterated"
	LatinNone               = "none"
)

// Observer receives resolution events, typically to feed metrics.
type Observer interface {
	LatinSource(source string)
	CollaboratorFailure(stage string, err error)
}

// NameResolver derives the display name bundle (name, name_en, name_de,
// name:latin, name:nonlatin, name_int and optional translations) from the
// tags of a map feature.
//
// It holds no mutable state and is safe for concurrent use as long as its
// collaborators are.
type NameResolver struct {
	classifier     output.ScriptClassifier
	transliterator output.Transliterator
	translations   output.TranslationProvider
	observer       Observer
	logger         *slog.Logger
}

type NameResolverOption func(*NameResolver)

// WithTranslations sets the provider used by Resolve.
func WithTranslations(p output.TranslationProvider) NameResolverOption {
	return func(r *NameResolver) { r.translations = p }
}

func WithObserver(o Observer) NameResolverOption {
	return func(r *NameResolver) { r.observer = o }
}

func WithLogger(l *slog.Logger) NameResolverOption {
	return func(r *NameResolver) { r.logger = l }
}

// NewNameResolver builds a resolver. transliterator may be nil, in which case
// the transliteration fallback never applies.
func NewNameResolver(
	classifier output.ScriptClassifier,
	transliterator output.Transliterator,
	opts ...NameResolverOption,
) *NameResolver {
	r := &NameResolver{
		classifier:     classifier,
		transliterator: transliterator,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the name bundle for tags using the configured translation
// provider, if any.
func (r *NameResolver) Resolve(tags entities.Tags) entities.Names {
	return r.ResolveWith(tags, r.translations)
}

// ResolveWithoutTranslations returns the default name attributes only.
func (r *NameResolver) ResolveWithoutTranslations(tags entities.Tags) entities.Names {
	return r.ResolveWith(tags, nil)
}

// ResolveWith returns the name bundle for tags. translations may be nil: no
// translation keys are added and the transliteration fallback is skipped.
//
//   - name is the name tag
//   - name_en is name:en, else name
//   - name_de is name:de, else name_en, else name
//   - name:latin is name when it is pure Latin, else the first pure Latin value
//     of name:en, int_name, name:de or any other name:<lang> tag (in tag order),
//     else a transliteration of name when the provider asks for one
//   - name:nonlatin is name without its Latin letters, unless that equals
//     name:latin
//   - name_int is int_name, else name:en, else name:latin, else name
//
// Empty values are never written. Collaborator failures only drop the value
// they were computing.
func (r *NameResolver) ResolveWith(tags entities.Tags, translations output.TranslationProvider) entities.Names {
	var names entities.Names

	name := present(tags.Value(entities.TagName))
	intName := present(tags.Value(entities.TagIntName))
	nameEn := present(tags.Value(entities.TagNameEn))
	nameDe := present(tags.Value(entities.TagNameDe))

	isLatin := name != "" && r.classifier.IsPureLatin(name)

	var latin string
	source := LatinNone
	if isLatin {
		latin, source = name, LatinFromName
	} else {
		latin = firstMatching(
			concat(slices.Values([]string{nameEn, intName, nameDe}), otherLanguageNames(tags)),
			r.classifier.IsPureLatin,
		)
		if latin != "" {
			source = LatinFromTag
		}
	}
	if latin == "" && translations != nil && translations.ShouldTransliterate() {
		latin = r.transliterate(tags)
		if latin != "" {
			source = LatinFromTransliterated
		}
	}

	var nonLatin string
	if !isLatin && name != "" {
		stripped, err := r.classifier.StripLatin(name)
		if err != nil {
			r.fail("strip_latin", err)
		} else {
			nonLatin = present(stripped)
		}
	}
	if nonLatin == latin {
		nonLatin = ""
	}

	names.Set(entities.KeyName, name)
	names.Set(entities.KeyNameEn, firstPresent(nameEn, name))
	names.Set(entities.KeyNameDe, firstPresent(nameDe, nameEn, name))
	names.Set(entities.KeyLatin, latin)
	names.Set(entities.KeyNonLatin, nonLatin)
	names.Set(entities.KeyNameInt, firstPresent(intName, nameEn, latin, name))

	if translations != nil {
		translations.AddTranslations(&names, tags)
	}

	if r.observer != nil {
		r.observer.LatinSource(source)
	}
	return names
}

func (r *NameResolver) transliterate(tags entities.Tags) string {
	if r.transliterator == nil {
		return ""
	}
	latin, err := r.transliterator.Transliterate(tags)
	if err != nil {
		r.fail("transliterate", err)
		return ""
	}
	return present(latin)
}

func (r *NameResolver) fail(stage string, err error) {
	r.logger.Debug("name collaborator failed", "stage", stage, "error", err)
	if r.observer != nil {
		r.observer.CollaboratorFailure(stage, err)
	}
}

// otherLanguageNames yields the values of name:<lang> tags other than name:en
// and name:de, in tag order.
func otherLanguageNames(tags entities.Tags) iter.Seq[string] {
	return func(yield func(string) bool) {
		for k, v := range tags.All() {
			if k == entities.TagNameEn || k == entities.TagNameDe || !entities.IsLanguageNameKey(k) {
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}
