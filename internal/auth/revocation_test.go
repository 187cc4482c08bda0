package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryRevocationMembership(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRevocationStore()
	expiresAt := time.Now().Add(time.Hour)

	revoked, err := store.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	require.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "token-a", expiresAt))

	revoked, err = store.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	require.True(t, revoked)

	// double revocation is a no-op, membership stays true
	require.NoError(t, store.Revoke(ctx, "token-a", expiresAt))
	revoked, err = store.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	require.True(t, revoked)

	revoked, err = store.IsRevoked(ctx, "token-b")
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestMemoryRevocationPrunesExpiredEntries(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRevocationStore()

	require.NoError(t, store.Revoke(ctx, "stale", time.Now().Add(-time.Minute)))

	revoked, err := store.IsRevoked(ctx, "stale")
	require.NoError(t, err)
	require.False(t, revoked)

	// a subsequent revoke sweeps entries past their embedded expiry
	require.NoError(t, store.Revoke(ctx, "fresh", time.Now().Add(time.Hour)))
	store.mu.RLock()
	_, stalePresent := store.entries["stale"]
	size := len(store.entries)
	store.mu.RUnlock()
	require.False(t, stalePresent)
	require.Equal(t, 1, size)
}

func TestMemoryRevocationConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRevocationStore()
	expiresAt := time.Now().Add(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			token := fmt.Sprintf("token-%d", n)
			_ = store.Revoke(ctx, token, expiresAt)
			_, _ = store.IsRevoked(ctx, token)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 32; i++ {
		revoked, err := store.IsRevoked(ctx, fmt.Sprintf("token-%d", i))
		require.NoError(t, err)
		require.True(t, revoked)
	}
}
