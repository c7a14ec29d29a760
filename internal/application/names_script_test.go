package application_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"omtnames/internal/application"
	"omtnames/internal/domain/entities"
	"omtnames/internal/infrastructure/script"
)

func TestResolve_LatinNamesWithTypographicPunctuation(t *testing.T) {
	r := application.NewNameResolver(script.NewLatinClassifier(), script.NewUnidecoder())

	for _, name := range []string{"St. John’s", "Provence–Alpes", "«Le Bar»", "Bahnhof · Nord", "№ 5"} {
		t.Run(name, func(t *testing.T) {
			names := r.ResolveWithoutTranslations(entities.NewTags("name", name))

			assert.Equal(t, map[string]string{
				"name":       name,
				"name_en":    name,
				"name_de":    name,
				"name:latin": name,
				"name_int":   name,
			}, names.Map())
		})
	}
}

func TestResolve_MixedScriptWithRealClassifier(t *testing.T) {
	r := application.NewNameResolver(script.NewLatinClassifier(), script.NewUnidecoder())

	names := r.ResolveWithoutTranslations(entities.NewTags("name", "Москва (Moscow)", "name:en", "Moscow"))

	assert.Equal(t, map[string]string{
		"name":          "Москва (Moscow)",
		"name_en":       "Moscow",
		"name_de":       "Moscow",
		"name:latin":    "Moscow",
		"name:nonlatin": "Москва",
		"name_int":      "Moscow",
	}, names.Map())
}
