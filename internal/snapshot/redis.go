package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/iho/finplan/internal/ledger"
)

const redisKey = "finplan:snapshot"

// RedisStore keeps the snapshot under a fixed key.
type RedisStore struct {
	client *redis.Client
	codec  *Codec
}

// NewRedisStore creates a store over an existing client.
func NewRedisStore(client *redis.Client, codec *Codec) *RedisStore {
	return &RedisStore{client: client, codec: codec}
}

func (s *RedisStore) Save(ctx context.Context, blob []byte) error {
	sealed, err := s.codec.Seal(blob)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, redisKey, sealed, 0).Err(); err != nil {
		return fmt.Errorf("snapshot: save: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context) ([]byte, error) {
	sealed, err := s.client.Get(ctx, redisKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ledger.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot: load: %w", err)
	}
	return s.codec.Open(sealed)
}
