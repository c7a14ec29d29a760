package i18n

import (
	"embed"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"omtnames/internal/domain/entities"
)

//go:embed catalog.*.toml
var catalogFS embed.FS

// Catalog is a curated set of feature names backed by go-i18n. Message ids
// are Wikidata ids and each catalog.<lang>.toml file holds one language:
//
//	Q1490 = "Tokio"
//
// Lookups only succeed on an exact language match; the bundle's default
// language is never used as a fallback.
type Catalog struct {
	bundle *i18n.Bundle
	logger *slog.Logger
}

// NewCatalog loads the embedded catalog files, then any extra files (for
// example catalog.fr.toml kept next to the binary). Files that fail to load
// are logged and skipped.
func NewCatalog(logger *slog.Logger, extraFiles ...string) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(catalogFS, "catalog.*.toml")
	if err != nil {
		logger.Warn("i18n: listing embedded catalog failed", "error", err)
	}
	for _, file := range files {
		if _, err := bundle.LoadMessageFileFS(catalogFS, file); err != nil {
			logger.Warn("i18n: failed to load catalog", "file", file, "error", err)
		}
	}
	for _, file := range extraFiles {
		if _, err := bundle.LoadMessageFile(file); err != nil {
			logger.Warn("i18n: failed to load catalog", "file", file, "error", err)
		}
	}

	return &Catalog{bundle: bundle, logger: logger}
}

// Languages lists the languages that have at least one catalog file.
func (c *Catalog) Languages() []string {
	tags := c.bundle.LanguageTags()
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.String()
	}
	return out
}

// Lookup returns the catalog name for the feature's Wikidata id in lang.
func (c *Catalog) Lookup(tags entities.Tags, lang string) (string, bool) {
	qid := WikidataID(tags)
	if qid == "" {
		return "", false
	}
	want, err := language.Parse(lang)
	if err != nil {
		return "", false
	}

	localizer := i18n.NewLocalizer(c.bundle, want.String())
	msg, got, err := localizer.LocalizeWithTag(&i18n.LocalizeConfig{MessageID: qid})
	if err != nil {
		var notFound *i18n.MessageNotFoundErr
		if !errors.As(err, &notFound) {
			c.logger.Debug("i18n: localize failed", "qid", qid, "lang", lang, "error", err)
		}
		return "", false
	}
	if !sameLanguage(got, want) {
		return "", false
	}
	return msg, msg != ""
}

func sameLanguage(a, b language.Tag) bool {
	ab, _ := a.Base()
	bb, _ := b.Base()
	if ab != bb {
		return false
	}
	as, _ := a.Script()
	bs, _ := b.Script()
	return as == bs
}
