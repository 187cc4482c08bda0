package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore records tokens that have been logged out before their
// natural expiry. Revoke is idempotent; IsRevoked is a plain membership test.
type RevocationStore interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// MemoryRevocationStore is a process-local store for single-instance
// deployments. Entries are pruned once the token they shadow has expired,
// so the set is bounded by the number of logouts within one validity window.
type MemoryRevocationStore struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemoryRevocationStore builds an empty store.
func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke inserts the token. Double revocation is a no-op.
func (s *MemoryRevocationStore) Revoke(_ context.Context, token string, expiresAt time.Time) error {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for t, exp := range s.entries {
		if now.After(exp) {
			delete(s.entries, t)
		}
	}
	s.entries[token] = expiresAt
	return nil
}

// IsRevoked reports membership. A revocation entry whose token has already
// expired no longer counts; expiry checking belongs to the codec.
func (s *MemoryRevocationStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	exp, ok := s.entries[token]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return !s.now().After(exp), nil
}

const revokedKeyPrefix = "revoked:"

// RedisRevocationStore keys revocations in Redis with TTL equal to the
// token's remaining validity, for deployments with more than one instance.
type RedisRevocationStore struct {
	client *redis.Client
}

// NewRedisRevocationStore wraps the client.
func NewRedisRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

// Revoke stores the token keyed entry. Tokens already past expiry are not
// stored; the codec rejects them anyway.
func (s *RedisRevocationStore) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, revokedKeyPrefix+token, "1", ttl).Err()
}

// IsRevoked checks key existence.
func (s *RedisRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
