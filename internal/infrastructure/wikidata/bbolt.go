// Package wikidata stores translated feature names keyed by Wikidata id.
// BoltStore keeps them in an embedded bbolt file; RedisStore shares them
// between hosts.
package wikidata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"omtnames/internal/ports/output"
)

var _ output.WikidataStore = (*BoltStore)(nil)

var bucketNames = []byte("wikidata_names")

// BoltStore implements output.WikidataStore backed by bbolt. Values are the
// JSON encoding of the language -> name map.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (or creates) a bbolt database at the given path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketNames)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bbolt init bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Put replaces the translations stored for qid.
func (s *BoltStore) Put(_ context.Context, qid string, names map[string]string) error {
	data, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("marshal names for %s: %w", qid, err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketNames).Put([]byte(qid), data)
	})
}

// Get returns the translations for qid. Returns nil, nil if none are stored.
func (s *BoltStore) Get(_ context.Context, qid string) (map[string]string, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketNames).Get([]byte(qid)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	var names map[string]string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("unmarshal names for %s: %w", qid, err)
	}
	return names, nil
}

// Each walks all entries in key order. The walk stops early when ctx is done.
func (s *BoltStore) Each(ctx context.Context, fn func(qid string, names map[string]string) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketNames).ForEach(func(k, v []byte) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var names map[string]string
			if err := json.Unmarshal(v, &names); err != nil {
				return fmt.Errorf("unmarshal names for %s: %w", k, err)
			}
			return fn(string(k), names)
		})
	})
}
