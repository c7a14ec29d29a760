package output

import "context"

// WikidataStore persists translated names keyed by Wikidata id (e.g. "Q1490").
// Each entry maps a language code to the name in that language.
type WikidataStore interface {
	Put(ctx context.Context, qid string, names map[string]string) error
	Get(ctx context.Context, qid string) (map[string]string, error)
	// Each calls fn for every stored entry; returning an error stops the walk.
	Each(ctx context.Context, fn func(qid string, names map[string]string) error) error
	Close() error
}
