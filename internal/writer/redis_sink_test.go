// internal/writer/redis_sink_test.go
package writer

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, rdb
}

func TestRedisSink_StoresLatestWithTTL(t *testing.T) {
	mr, rdb := setupTestRedis(t)
	s := NewRedisSink(rdb, "ddguard:reading:latest", 10*time.Minute)
	defer s.Close()

	require.NoError(t, s.Deliver(context.Background(), testAssessment(154)))
	require.NoError(t, s.Deliver(context.Background(), testAssessment(160)))

	raw, err := mr.Get("ddguard:reading:latest")
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	require.NotNil(t, doc.BGL)
	assert.Equal(t, 160, *doc.BGL)

	assert.Equal(t, 10*time.Minute, mr.TTL("ddguard:reading:latest"))

	mr.FastForward(11 * time.Minute)
	assert.False(t, mr.Exists("ddguard:reading:latest"))
}

func TestRedisSink_ServerDown(t *testing.T) {
	mr, rdb := setupTestRedis(t)
	s := NewRedisSink(rdb, "k", time.Minute)
	defer s.Close()

	mr.Close()
	assert.Error(t, s.Deliver(context.Background(), testAssessment(100)))
}
