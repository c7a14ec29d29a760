package wikidata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"omtnames/internal/ports/output"
)

var _ output.WikidataStore = (*RedisStore)(nil)

const redisKeyPrefix = "omtnames:wikidata:"

const redisScanCount = 500

// RedisStore implements output.WikidataStore on a shared Redis instance.
// Entries never expire.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(qid string) string {
	return redisKeyPrefix + qid
}

func (s *RedisStore) Put(ctx context.Context, qid string, names map[string]string) error {
	p, err := json.Marshal(names)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisKey(qid), p, 0).Err()
}

// Get returns the translations for qid. Returns nil, nil if none are stored.
func (s *RedisStore) Get(ctx context.Context, qid string) (map[string]string, error) {
	val, err := s.client.Get(ctx, redisKey(qid)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names map[string]string
	if err := json.Unmarshal([]byte(val), &names); err != nil {
		return nil, fmt.Errorf("unmarshal names for %s: %w", qid, err)
	}
	return names, nil
}

// Each scans every stored entry. Keys removed between the scan and the read
// are skipped.
func (s *RedisStore) Each(ctx context.Context, fn func(qid string, names map[string]string) error) error {
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", redisScanCount).Iterator()
	for iter.Next(ctx) {
		qid := strings.TrimPrefix(iter.Val(), redisKeyPrefix)
		names, err := s.Get(ctx, qid)
		if err != nil {
			return err
		}
		if names == nil {
			continue
		}
		if err := fn(qid, names); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
