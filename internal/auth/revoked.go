// Package auth holds the server-side session state that outlives a single
// request: the denylist of revoked bearer tokens.  Tokens are self-signed
// JWTs, so logout cannot delete them; instead the token's jti is parked in
// Redis until the token would have expired on its own.
package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevokedStore tracks revoked token ids in Redis.  A nil *RevokedStore is
// valid and behaves as "nothing is revoked" for reads while refusing
// revocations, which lets the API keep serving when Redis is down.
type RevokedStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRevokedStore builds a store on the given client.  Returns nil when
// the client is nil so callers can pass the result around without checks.
func NewRevokedStore(rdb *redis.Client) *RevokedStore {
	if rdb == nil {
		return nil
	}
	return &RevokedStore{rdb: rdb, prefix: "revoked:"}
}

// Revoke denylists a token id until its expiry.  Tokens already past
// their expiry need no entry at all.
func (s *RevokedStore) Revoke(ctx context.Context, jti string, exp time.Time) error {
	if s == nil {
		return redis.ErrClosed
	}
	ttl := time.Until(exp)
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, s.prefix+jti, "1", ttl).Err()
}

// IsRevoked reports whether the token id is on the denylist.  Lookup
// errors fail open: a Redis hiccup must not lock every caller out.
func (s *RevokedStore) IsRevoked(ctx context.Context, jti string) bool {
	if s == nil || jti == "" {
		return false
	}
	n, err := s.rdb.Exists(ctx, s.prefix+jti).Result()
	if err != nil {
		return false
	}
	return n > 0
}
