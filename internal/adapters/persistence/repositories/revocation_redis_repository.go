package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevokedTokenPrefix namespaces revocation keys in Redis
const RevokedTokenPrefix = "revoked-token:"

type redisRevocationRepository struct {
	client *redis.Client
}

// NewRedisRevocationRepository creates a revocation list shared through Redis
func NewRedisRevocationRepository(client *redis.Client) RevocationRepository {
	return &redisRevocationRepository{client: client}
}

// Revoke stores tokenHash with a TTL that ends when the token expires
func (r *redisRevocationRepository) Revoke(ctx context.Context, tokenHash string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, RevokedTokenPrefix+tokenHash, "1", ttl).Err()
}

// IsRevoked reports whether tokenHash is on the list
func (r *redisRevocationRepository) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	n, err := r.client.Exists(ctx, RevokedTokenPrefix+tokenHash).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
