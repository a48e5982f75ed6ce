package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// verifiedKeyPrefix is the Redis key prefix for verified API key fingerprints.
	verifiedKeyPrefix = "auth:verified:"
	// verifiedKeyTTL bounds how long a verification is trusted.
	verifiedKeyTTL = 5 * time.Minute
)

// IsKeyVerified reports whether fingerprint passed verification recently.
func (c *Cache) IsKeyVerified(ctx context.Context, fingerprint string) (bool, error) {
	err := c.client.Get(ctx, verifiedKeyPrefix+fingerprint).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}
	return true, nil
}

// MarkKeyVerified remembers fingerprint for verifiedKeyTTL.
func (c *Cache) MarkKeyVerified(ctx context.Context, fingerprint string) error {
	if err := c.client.Set(ctx, verifiedKeyPrefix+fingerprint, "1", verifiedKeyTTL).Err(); err != nil {
		return fmt.Errorf("failed to mark key verified: %w", err)
	}
	return nil
}
