// internal/writer/redis_sink.go
package writer

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/ddguard/relay/internal/status"
)

// RedisSink keeps the latest reading under one key.
// The key expires after ttl so stale data disappears when polling stops.
type RedisSink struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

func NewRedisSink(rdb *redis.Client, key string, ttl time.Duration) *RedisSink {
	return &RedisSink{rdb: rdb, key: key, ttl: ttl}
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) Deliver(ctx context.Context, a status.Assessment) error {
	b, err := encodeDocument(a)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, s.key, b, s.ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisSink) Close() error { return s.rdb.Close() }
