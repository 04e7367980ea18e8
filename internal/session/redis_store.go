package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions in Redis under "<prefix>:<session id>" with the
// session TTL as key expiry.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore wraps an already connected client.
func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "session"
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) key(sessionID string) string { return s.prefix + ":" + sessionID }

func (s *RedisStore) Save(ctx context.Context, sessionID string, accountID uint64, ttl time.Duration) error {
	return s.rdb.Set(ctx, s.key(sessionID), strconv.FormatUint(accountID, 10), ttl).Err()
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (uint64, error) {
	v, err := s.rdb.Get(ctx, s.key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrSessionNotFound
	}
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session %s: %w", sessionID, err)
	}
	return id, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, s.key(sessionID)).Err()
}
