package translog

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

const defaultRedisKey = "vendingkit:translog"

// RedisStorage keeps the transaction log in a Redis list so the audit trail
// survives controller restarts. Entries are stored as JSON documents, oldest
// at the head of the list.
type RedisStorage struct {
	client *redis.Client
	key    string
}

// RedisOption configures a RedisStorage.
type RedisOption func(*RedisStorage)

// WithKey overrides the Redis list key.
func WithKey(key string) RedisOption {
	return func(s *RedisStorage) {
		if key != "" {
			s.key = key
		}
	}
}

// NewRedisStorage creates a Redis-backed transaction log storage.
func NewRedisStorage(client *redis.Client, opts ...RedisOption) *RedisStorage {
	if client == nil {
		panic("translog: redis client cannot be nil")
	}

	s := &RedisStorage{
		client: client,
		key:    defaultRedisKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStorage) Append(ctx context.Context, entry Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if err := s.client.RPush(ctx, s.key, payload).Err(); err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}
	return nil
}

func (s *RedisStorage) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}

	// LRANGE with a negative start yields the tail of the list, oldest first,
	// which matches the newest-last contract.
	raw, err := s.client.LRange(ctx, s.key, int64(-n), -1).Result()
	if err != nil {
		return nil, errors.Join(ErrStorageUnavailable, err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var entry Entry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Key returns the Redis list key the storage writes to.
func (s *RedisStorage) Key() string {
	return s.key
}
