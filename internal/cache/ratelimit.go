package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// rateLimitIPPrefix namespaces report generation buckets.
	rateLimitIPPrefix = "ratelimit:report:ip:"
	// minRateLimitTTL is the shortest bucket TTL in seconds.
	minRateLimitTTL = 10
)

// RateLimitResult is the outcome of one token bucket check.
type RateLimitResult struct {
	Allowed   bool
	Remaining int64
	// ResetAt is when the next token becomes available.
	ResetAt    time.Time
	RetryAfter time.Duration
}

// tokenBucketScript refills and takes one token atomically.
// Times are in milliseconds. Returns {allowed, wait_ms, remaining}
// where wait_ms is the time until the next whole token.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local rate_ms = tonumber(ARGV[1])
local burst = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local state = redis.call('HMGET', key, 'tokens', 'ts')
local tokens = tonumber(state[1]) or burst
local ts = tonumber(state[2]) or now
if now > ts then
	tokens = math.min(burst, tokens + (now - ts) * rate_ms)
end

local allowed = 0
if tokens >= 1 then
	tokens = tokens - 1
	allowed = 1
end

local wait = 0
if tokens < 1 then
	wait = math.ceil((1 - tokens) / rate_ms)
end

redis.call('HSET', key, 'tokens', tostring(tokens), 'ts', now)
redis.call('EXPIRE', key, ttl)

return {allowed, wait, math.floor(tokens)}
`)

// CheckIPRateLimit takes one report token from the bucket of ip.
// The IP is hashed before it reaches Redis. A non-positive rate means
// unlimited and never touches Redis. Redis failures are returned so
// the caller can decide to fail open.
func (c *Cache) CheckIPRateLimit(ctx context.Context, ip string, ratePerMinute, burst int) (*RateLimitResult, error) {
	now := time.Now()
	if ratePerMinute <= 0 {
		return &RateLimitResult{Allowed: true, Remaining: int64(burst), ResetAt: now}, nil
	}

	key := rateLimitIPPrefix + hashIP(ip)
	ratePerMs := float64(ratePerMinute) / float64(time.Minute/time.Millisecond)

	res, err := tokenBucketScript.Run(ctx, c.client,
		[]string{key},
		ratePerMs, burst, now.UnixMilli(), rateLimitTTL(ratePerMinute, burst),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("rate limit script: %w", err)
	}
	if len(res) != 3 {
		return nil, fmt.Errorf("rate limit script: unexpected reply %v", res)
	}

	wait := time.Duration(res[1]) * time.Millisecond
	result := &RateLimitResult{
		Allowed:   res[0] == 1,
		Remaining: res[2],
		ResetAt:   now.Add(wait),
	}
	if !result.Allowed {
		result.RetryAfter = wait
	}
	return result, nil
}

// rateLimitTTL keeps a bucket alive until it would have refilled completely.
func rateLimitTTL(ratePerMinute, burst int) int {
	ttl := (burst*60+ratePerMinute-1)/ratePerMinute + 1
	if ttl < minRateLimitTTL {
		return minRateLimitTTL
	}
	return ttl
}

// hashIP returns the first 8 bytes of the IP's SHA-256 as hex.
func hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:8])
}
