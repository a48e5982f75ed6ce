package auth

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidKey is returned for any key that does not authenticate.
var ErrInvalidKey = errors.New("invalid API key")

// VerifiedCache remembers keys that already passed argon2 verification.
type VerifiedCache interface {
	IsKeyVerified(ctx context.Context, fingerprint string) (bool, error)
	MarkKeyVerified(ctx context.Context, fingerprint string) error
}

// Verifier checks API keys against a single configured argon2id hash.
type Verifier struct {
	hash  string
	cache VerifiedCache
}

// NewVerifier validates hash and returns a Verifier. cache may be nil.
func NewVerifier(hash string, cache VerifiedCache) (*Verifier, error) {
	if err := ValidateHash(hash); err != nil {
		return nil, fmt.Errorf("report API key hash: %w", err)
	}
	return &Verifier{hash: hash, cache: cache}, nil
}

// Verify authenticates key. Cache errors fall back to full verification.
func (v *Verifier) Verify(ctx context.Context, key string) (*Principal, bool, error) {
	parsed, err := ParseAPIKey(key)
	if err != nil {
		return nil, false, ErrInvalidKey
	}
	principal := &Principal{Env: parsed.Env, KeyPrefix: parsed.Prefix}

	// Bound to the configured hash so rotating it invalidates old entries.
	fingerprint := Fingerprint(v.hash + "\x00" + key)

	if v.cache != nil {
		if ok, err := v.cache.IsKeyVerified(ctx, fingerprint); err == nil && ok {
			return principal, true, nil
		}
	}

	match, err := VerifyKey(key, v.hash)
	if err != nil {
		return nil, false, fmt.Errorf("verify key: %w", err)
	}
	if !match {
		return nil, false, ErrInvalidKey
	}

	if v.cache != nil {
		_ = v.cache.MarkKeyVerified(ctx, fingerprint)
	}

	return principal, false, nil
}
