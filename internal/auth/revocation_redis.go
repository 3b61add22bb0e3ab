package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revocationKeyPrefix = "revoked:"

// RedisRevocationList stores revoked JTIs in Redis with a TTL matching
// the token's remaining lifetime, so entries clean themselves up.
type RedisRevocationList struct {
	client *redis.Client
}

// NewRedisRevocationList wraps the given client.
func NewRedisRevocationList(client *redis.Client) *RedisRevocationList {
	return &RedisRevocationList{client: client}
}

// Revoke writes the JTI with an expiry at the token's natural end.
func (l *RedisRevocationList) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return l.client.Set(ctx, revocationKeyPrefix+jti, "1", ttl).Err()
}

// IsRevoked checks for the JTI key.
func (l *RedisRevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := l.client.Exists(ctx, revocationKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
