package application

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"unicode"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omtnames/internal/domain/entities"
)

// asciiClassifier treats ASCII as Latin and everything else as non-Latin.
type asciiClassifier struct {
	strip func(string) (string, error)
}

func (asciiClassifier) IsPureLatin(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

func (c asciiClassifier) StripLatin(s string) (string, error) {
	if c.strip != nil {
		return c.strip(s)
	}
	out := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(out), " "), nil
}

type fakeTransliterator struct {
	value string
	err   error
	calls int
}

func (f *fakeTransliterator) Transliterate(tags entities.Tags) (string, error) {
	f.calls++
	return f.value, f.err
}

type fakeProvider struct {
	transliterate bool
	add           map[string]string
	calls         int
	seen          []map[string]string
}

func (p *fakeProvider) ShouldTransliterate() bool { return p.transliterate }

func (p *fakeProvider) AddTranslations(names *entities.Names, tags entities.Tags) {
	p.calls++
	p.seen = append(p.seen, names.Map())
	for k, v := range p.add {
		if !names.Has(k) {
			names.Set(k, v)
		}
	}
}

type recordingObserver struct {
	mu       sync.Mutex
	sources  []string
	failures []string
}

func (o *recordingObserver) LatinSource(source string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sources = append(o.sources, source)
}

func (o *recordingObserver) CollaboratorFailure(stage string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failures = append(o.failures, stage)
}

func newTestResolver(opts ...NameResolverOption) (*NameResolver, *fakeTransliterator) {
	tr := &fakeTransliterator{value: "Translit"}
	return NewNameResolver(asciiClassifier{}, tr, opts...), tr
}

func TestResolve_EmptyTags(t *testing.T) {
	r, _ := newTestResolver()

	names := r.Resolve(entities.Tags{})
	assert.Equal(t, 0, names.Len())

	names = r.Resolve(entities.NewTags("highway", "primary", "old_name", "Foo"))
	assert.Equal(t, 0, names.Len(), "tags without name keys give an empty bundle")
}

func TestResolve_Examples(t *testing.T) {
	testCases := []struct {
		name     string
		tags     entities.Tags
		want     map[string]string
		wantKeys []string
	}{
		{
			name: "non-Latin name with English name",
			tags: entities.NewTags("name", "東京都", "name:en", "Tokyo"),
			want: map[string]string{
				"name":          "東京都",
				"name_en":       "Tokyo",
				"name_de":       "Tokyo",
				"name:latin":    "Tokyo",
				"name:nonlatin": "東京都",
				"name_int":      "Tokyo",
			},
			wantKeys: []string{"name", "name_en", "name_de", "name:latin", "name:nonlatin", "name_int"},
		},
		{
			name: "Latin name",
			tags: entities.NewTags("name", "Paris"),
			want: map[string]string{
				"name":       "Paris",
				"name_en":    "Paris",
				"name_de":    "Paris",
				"name:latin": "Paris",
				"name_int":   "Paris",
			},
			wantKeys: []string{"name", "name_en", "name_de", "name:latin", "name_int"},
		},
		{
			name:     "no tags",
			tags:     entities.NewTags(),
			want:     map[string]string{},
			wantKeys: []string{},
		},
	}

	r, _ := newTestResolver()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := r.ResolveWithoutTranslations(tc.tags)
			if diff := cmp.Diff(tc.want, got.Map()); diff != "" {
				t.Errorf("bundle mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tc.wantKeys, got.Keys())
		})
	}
}

func TestResolve_LatinNameIsItsOwnLatinName(t *testing.T) {
	r, _ := newTestResolver()
	for _, tags := range []entities.Tags{
		entities.NewTags("name", "Berlin"),
		entities.NewTags("name", "Berlin", "name:en", "Berlin City", "int_name", "BER"),
		entities.NewTags("name", "Main Street 12", "name:ru", "Мейн-стрит"),
	} {
		names := r.ResolveWithoutTranslations(tags)
		latin, ok := names.Get(entities.KeyLatin)
		require.True(t, ok)
		assert.Equal(t, tags.Value("name"), latin)
		assert.False(t, names.Has(entities.KeyNonLatin))
	}
}

func TestResolve_LatinFromEnglishWhenNameMissing(t *testing.T) {
	r, _ := newTestResolver()
	names := r.ResolveWithoutTranslations(entities.NewTags("name:en", "Tokyo"))

	want := map[string]string{
		"name_en":    "Tokyo",
		"name_de":    "Tokyo",
		"name:latin": "Tokyo",
		"name_int":   "Tokyo",
	}
	assert.Equal(t, want, names.Map())
}

func TestResolve_LatinCandidateOrder(t *testing.T) {
	testCases := []struct {
		name string
		tags entities.Tags
		want string
	}{
		{
			name: "name:en first",
			tags: entities.NewTags("name", "Москва", "name:de", "Moskau", "int_name", "Moskva", "name:en", "Moscow"),
			want: "Moscow",
		},
		{
			name: "int_name before name:de",
			tags: entities.NewTags("name", "Москва", "name:de", "Moskau", "int_name", "Moskva"),
			want: "Moskva",
		},
		{
			name: "non-Latin name:en is skipped",
			tags: entities.NewTags("name", "Москва", "name:en", "Москва", "name:de", "Moskau"),
			want: "Moskau",
		},
		{
			name: "other languages in tag order",
			tags: entities.NewTags("name", "Москва", "name:uk", "Москва", "name:pl", "Moskwa", "name:fr", "Moscou"),
			want: "Moskwa",
		},
		{
			name: "tag order is not sorted order",
			tags: entities.NewTags("name", "Москва", "name:fr", "Moscou", "name:pl", "Moskwa"),
			want: "Moscou",
		},
		{
			name: "script subtag keys count",
			tags: entities.NewTags("name", "Београд", "name:sr-Latn", "Beograd"),
			want: "Beograd",
		},
		{
			name: "keys that are not language names are ignored",
			tags: entities.NewTags("name", "Москва", "name:prefix", "City", "old_name", "Moskva", "alt_name", "Moscow"),
			want: "",
		},
		{
			name: "blank candidates are absent",
			tags: entities.NewTags("name", "Москва", "name:en", "   ", "name:fr", "Moscou"),
			want: "Moscou",
		},
	}

	r, _ := newTestResolver()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			names := r.ResolveWithoutTranslations(tc.tags)
			got, _ := names.Get(entities.KeyLatin)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolve_NameEnAndNameDeFallbacks(t *testing.T) {
	testCases := []struct {
		name       string
		tags       entities.Tags
		wantNameEn string
		wantNameDe string
	}{
		{"all present", entities.NewTags("name", "N", "name:en", "E", "name:de", "D"), "E", "D"},
		{"no name:de uses name:en", entities.NewTags("name", "N", "name:en", "E"), "E", "E"},
		{"only name", entities.NewTags("name", "N"), "N", "N"},
		{"no name:en", entities.NewTags("name", "N", "name:de", "D"), "N", "D"},
		{"only name:de", entities.NewTags("name:de", "D"), "", "D"},
		{"only name:en", entities.NewTags("name:en", "E"), "E", "E"},
	}

	r, _ := newTestResolver()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			names := r.ResolveWithoutTranslations(tc.tags)
			en, _ := names.Get(entities.KeyNameEn)
			de, _ := names.Get(entities.KeyNameDe)
			assert.Equal(t, tc.wantNameEn, en)
			assert.Equal(t, tc.wantNameDe, de)
		})
	}
}

func TestResolve_NameIntPrecedence(t *testing.T) {
	testCases := []struct {
		name string
		tags entities.Tags
		want string
	}{
		{"int_name wins", entities.NewTags("name", "Москва", "int_name", "Moskva", "name:en", "Moscow"), "Moskva"},
		{"int_name wins even if non-Latin", entities.NewTags("name", "Москва", "int_name", "МОСКВА", "name:en", "Moscow"), "МОСКВА"},
		{"name:en next", entities.NewTags("name", "Москва", "name:en", "Moscow", "name:fr", "Moscou"), "Moscow"},
		{"then name:latin", entities.NewTags("name", "Москва", "name:fr", "Moscou"), "Moscou"},
		{"then name", entities.NewTags("name", "Москва"), "Москва"},
		{"Latin name is its own latin", entities.NewTags("name", "Paris"), "Paris"},
		{"nothing", entities.NewTags("ref", "A1"), ""},
	}

	r, _ := newTestResolver()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			names := r.ResolveWithoutTranslations(tc.tags)
			got, _ := names.Get(entities.KeyNameInt)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolve_Transliteration(t *testing.T) {
	tags := entities.NewTags("name", "Москва")

	t.Run("used when the provider asks for it", func(t *testing.T) {
		r, tr := newTestResolver()
		names := r.ResolveWith(tags, &fakeProvider{transliterate: true})
		assert.Equal(t, 1, tr.calls)
		latin, _ := names.Get(entities.KeyLatin)
		assert.Equal(t, "Translit", latin)
		nameInt, _ := names.Get(entities.KeyNameInt)
		assert.Equal(t, "Translit", nameInt)
	})

	t.Run("skipped when the provider declines", func(t *testing.T) {
		r, tr := newTestResolver()
		names := r.ResolveWith(tags, &fakeProvider{transliterate: false})
		assert.Equal(t, 0, tr.calls)
		assert.False(t, names.Has(entities.KeyLatin))
	})

	t.Run("skipped without a provider", func(t *testing.T) {
		r, tr := newTestResolver()
		names := r.ResolveWithoutTranslations(tags)
		assert.Equal(t, 0, tr.calls)
		assert.False(t, names.Has(entities.KeyLatin))
	})

	t.Run("skipped when a tag has a Latin name", func(t *testing.T) {
		r, tr := newTestResolver()
		r.ResolveWith(entities.NewTags("name", "Москва", "name:en", "Moscow"), &fakeProvider{transliterate: true})
		assert.Equal(t, 0, tr.calls)
	})

	t.Run("skipped without a transliterator", func(t *testing.T) {
		r := NewNameResolver(asciiClassifier{}, nil)
		names := r.ResolveWith(tags, &fakeProvider{transliterate: true})
		assert.False(t, names.Has(entities.KeyLatin))
	})
}

func TestResolve_CollaboratorFailuresOnlyDropTheirValue(t *testing.T) {
	obs := &recordingObserver{}
	tr := &fakeTransliterator{err: errors.New("boom")}
	classifier := asciiClassifier{strip: func(string) (string, error) { return "", errors.New("bad input") }}
	r := NewNameResolver(classifier, tr, WithObserver(obs))

	names := r.ResolveWith(entities.NewTags("name", "Москва", "name:de", "Москау"), &fakeProvider{transliterate: true})

	want := map[string]string{
		"name":     "Москва",
		"name_en":  "Москва",
		"name_de":  "Москау",
		"name_int": "Москва",
	}
	assert.Equal(t, want, names.Map())
	assert.ElementsMatch(t, []string{"transliterate", "strip_latin"}, obs.failures)
	assert.Equal(t, []string{LatinNone}, obs.sources)
}

func TestResolve_NonLatinEqualToLatinIsDropped(t *testing.T) {
	classifier := asciiClassifier{strip: func(s string) (string, error) { return "Tokyo", nil }}
	r := NewNameResolver(classifier, nil)

	names := r.ResolveWithoutTranslations(entities.NewTags("name", "東京 Tokyo", "name:en", "Tokyo"))
	assert.False(t, names.Has(entities.KeyNonLatin))
	latin, _ := names.Get(entities.KeyLatin)
	assert.Equal(t, "Tokyo", latin)
}

func TestResolve_EmptyNonLatinIsDropped(t *testing.T) {
	classifier := asciiClassifier{strip: func(s string) (string, error) { return "  ", nil }}
	r := NewNameResolver(classifier, nil)

	names := r.ResolveWithoutTranslations(entities.NewTags("name", "Ωmega"))
	assert.False(t, names.Has(entities.KeyNonLatin))
}

func TestResolve_ProviderIsAlwaysCalled(t *testing.T) {
	tags := entities.NewTags("name", "Paris", "name:fr", "Paris")
	p := &fakeProvider{add: map[string]string{"name:fr": "Paris", "name:ja": "パリ"}}
	r, _ := newTestResolver(WithTranslations(p))

	names := r.Resolve(tags)

	require.Equal(t, 1, p.calls)
	assert.Equal(t, map[string]string{
		"name":       "Paris",
		"name_en":    "Paris",
		"name_de":    "Paris",
		"name:latin": "Paris",
		"name_int":   "Paris",
	}, p.seen[0], "provider sees the bundle built so far")
	fr, _ := names.Get("name:fr")
	ja, _ := names.Get("name:ja")
	assert.Equal(t, "Paris", fr)
	assert.Equal(t, "パリ", ja)

	r.ResolveWithoutTranslations(tags)
	assert.Equal(t, 1, p.calls, "ResolveWithoutTranslations never calls the provider")
}

func TestResolve_BlankValuesAreAbsent(t *testing.T) {
	r, _ := newTestResolver()
	inputs := []entities.Tags{
		entities.NewTags("name", "   "),
		entities.NewTags("name", "", "name:en", "", "name:de", "\t", "int_name", " "),
		entities.NewTags("name", " ", "name:en", "London"),
		entities.NewTags("name", "Москва", "name:fr", ""),
	}
	for _, tags := range inputs {
		names := r.ResolveWith(tags, &fakeProvider{transliterate: true, add: map[string]string{"name:xx": ""}})
		for k, v := range names.All() {
			assert.NotEmpty(t, strings.TrimSpace(v), "key %s", k)
		}
	}

	names := r.ResolveWithoutTranslations(entities.NewTags("name", " ", "name:en", "London"))
	assert.False(t, names.Has(entities.KeyName))
	en, _ := names.Get(entities.KeyNameEn)
	assert.Equal(t, "London", en)
}

func TestResolve_Idempotent(t *testing.T) {
	r, _ := newTestResolver(WithTranslations(&fakeProvider{transliterate: true, add: map[string]string{"name:fr": "Moscou"}}))
	tags := entities.NewTags("name", "Москва", "name:pl", "Moskwa", "name:uk", "Москва")

	first := r.Resolve(tags)
	second := r.Resolve(tags)
	assert.Equal(t, first.Map(), second.Map())
	assert.Equal(t, first.Keys(), second.Keys())
}

func TestResolve_ObserverSeesLatinSource(t *testing.T) {
	obs := &recordingObserver{}
	r, _ := newTestResolver(WithObserver(obs))
	p := &fakeProvider{transliterate: true}

	r.ResolveWith(entities.NewTags("name", "Paris"), p)
	r.ResolveWith(entities.NewTags("name", "Москва", "name:en", "Moscow"), p)
	r.ResolveWith(entities.NewTags("name", "Москва"), p)
	r.ResolveWithoutTranslations(entities.NewTags("name", "Москва"))

	assert.Equal(t, []string{LatinFromName, LatinFromTag, LatinFromTransliterated, LatinNone}, obs.sources)
}

func TestResolve_Concurrent(t *testing.T) {
	r := NewNameResolver(asciiClassifier{}, nil)
	tags := entities.NewTags("name", "東京都", "name:en", "Tokyo", "name:fr", "Tokyo")
	want := r.ResolveWithoutTranslations(tags).Map()

	var wg sync.WaitGroup
	results := make([]map[string]string, 32)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = r.ResolveWithoutTranslations(tags).Map()
		}()
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
