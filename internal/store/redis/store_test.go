package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pdrpinto/bestfirst/internal/store"
	"github.com/pdrpinto/bestfirst/internal/store/redis"
	"github.com/pdrpinto/bestfirst/internal/store/storetest"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)

	storetest.RunContract(t, redis.NewFromClient(client))
}

func TestRedisStore_PrefixAndTTL(t *testing.T) {
	mr, client := newClient(t)
	s := redis.NewFromClient(client, redis.WithPrefix("test:"), redis.WithTTL(time.Second))
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "k", &store.Entry{Domain: "anima", Found: true}))
	assert.True(t, mr.Exists("test:k"))

	_, err := s.Get(ctx, "k")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRedisStore_CorruptEntry(t *testing.T) {
	mr, client := newClient(t)
	s := redis.NewFromClient(client)

	require.NoError(t, mr.Set("bestfirst:solution:bad", "{not json"))

	_, err := s.Get(context.Background(), "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrNotFound)
}
