package redisstore

import (
	"context"
	"fmt"
	"time"
)

// RevocationStore remembers signed-out session tokens until they expire.
type RevocationStore struct {
	*Redis
}

// Revocations returns the revocation view of r.
func (r *Redis) Revocations() *RevocationStore {
	return &RevocationStore{Redis: r}
}

// Revoke marks tokenID as revoked until expiresAt. Tokens already expired
// need no entry.
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := s.Client.Set(ctx, s.key("revoked", tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("could not revoke token: %w", err)
	}

	return nil
}

func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.Client.Exists(ctx, s.key("revoked", tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("could not check revocation: %w", err)
	}

	return n > 0, nil
}
