package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRevocationRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRevocationRepository().(*memoryRevocationRepository)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	revoked, err := repo.IsRevoked(ctx, "hash-a")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, repo.Revoke(ctx, "hash-a", now.Add(time.Hour)))
	require.NoError(t, repo.Revoke(ctx, "hash-a", now.Add(time.Hour)))
	revoked, err = repo.IsRevoked(ctx, "hash-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	// already-expired tokens are not stored
	require.NoError(t, repo.Revoke(ctx, "hash-b", now.Add(-time.Minute)))
	assert.NotContains(t, repo.revoked, "hash-b")

	now = now.Add(2 * time.Hour)
	revoked, err = repo.IsRevoked(ctx, "hash-a")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Empty(t, repo.revoked)
}

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisRevocationRepository(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	repo := NewRedisRevocationRepository(client)

	revoked, err := repo.IsRevoked(ctx, "hash-a")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, repo.Revoke(ctx, "hash-a", time.Now().Add(time.Hour)))
	revoked, err = repo.IsRevoked(ctx, "hash-a")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.True(t, mr.Exists(RevokedTokenPrefix+"hash-a"))
	assert.Greater(t, mr.TTL(RevokedTokenPrefix+"hash-a"), 59*time.Minute)

	mr.FastForward(2 * time.Hour)
	revoked, err = repo.IsRevoked(ctx, "hash-a")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, repo.Revoke(ctx, "hash-b", time.Now().Add(-time.Second)))
	assert.False(t, mr.Exists(RevokedTokenPrefix+"hash-b"))
}

func TestRedisRevocationRepository_Unavailable(t *testing.T) {
	mr, client := setupRedis(t)
	repo := NewRedisRevocationRepository(client)
	mr.Close()

	_, err := repo.IsRevoked(context.Background(), "hash-a")
	assert.Error(t, err)
}
