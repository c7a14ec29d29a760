package i18n

import (
	"context"
	"fmt"
	"maps"
	"regexp"
	"strings"
	"sync"

	"omtnames/internal/domain/entities"
	"omtnames/internal/ports/output"
)

var wikidataID = regexp.MustCompile(`^Q[1-9][0-9]*$`)

// WikidataID returns the feature's Wikidata id ("Q1490") or "" if the
// wikidata tag is missing or malformed.
func WikidataID(tags entities.Tags) string {
	qid := strings.TrimSpace(tags.Value(entities.TagWikidata))
	if !wikidataID.MatchString(qid) {
		return ""
	}
	return qid
}

// TagSource reads translations from the feature's own name:<lang> tags.
type TagSource struct{}

func (TagSource) Lookup(tags entities.Tags, lang string) (string, bool) {
	v, ok := tags.Get(entities.LanguageNameKey(lang))
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// WikidataTable keeps Wikidata translations in memory so lookups never block
// on I/O. It is filled from a store before resolution starts.
type WikidataTable struct {
	mu    sync.RWMutex
	names map[string]map[string]string
}

func NewWikidataTable() *WikidataTable {
	return &WikidataTable{names: make(map[string]map[string]string)}
}

// Put replaces the translations for qid.
func (w *WikidataTable) Put(qid string, names map[string]string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.names[qid] = maps.Clone(names)
}

func (w *WikidataTable) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.names)
}

// Load copies every entry of store into the table and returns how many were read.
func (w *WikidataTable) Load(ctx context.Context, store output.WikidataStore) (int, error) {
	n := 0
	err := store.Each(ctx, func(qid string, names map[string]string) error {
		w.Put(qid, names)
		n++
		return nil
	})
	if err != nil {
		return n, fmt.Errorf("load wikidata translations: %w", err)
	}
	return n, nil
}

func (w *WikidataTable) Lookup(tags entities.Tags, lang string) (string, bool) {
	qid := WikidataID(tags)
	if qid == "" {
		return "", false
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	v, ok := w.names[qid][lang]
	return v, ok
}
