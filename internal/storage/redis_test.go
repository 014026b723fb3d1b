package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, "storefront:"), mr
}

func TestRedisStore_RoundTrip(t *testing.T) {
	s, mr := setupTestRedis(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "cart")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "cart", []byte(`[]`)))
	assert.True(t, mr.Exists("storefront:cart"))
	assert.Zero(t, mr.TTL("storefront:cart"), "keys must not expire")

	got, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	require.NoError(t, s.Set(ctx, "token", []byte("abc")))
	require.NoError(t, s.Delete(ctx, "cart", "token"))
	assert.False(t, mr.Exists("storefront:cart"))
	assert.False(t, mr.Exists("storefront:token"))
}

func TestRedisStore_ServerDown(t *testing.T) {
	s, mr := setupTestRedis(t)
	mr.Close()

	_, err := s.Get(context.Background(), "cart")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
