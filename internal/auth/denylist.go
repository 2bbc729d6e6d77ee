package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist records revoked token ids until their natural expiry. Sessions
// stay stateless for verification; the denylist only exists for emergency
// revocation (a password change revokes the presenting token). Entries
// carry a TTL equal to the token's remaining lifetime so the set cannot
// grow unbounded.
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

const denylistKeyPrefix = "auth:denylist:"

// redisDenylist stores revoked token ids as expiring Redis keys.
type redisDenylist struct {
	client *redis.Client
}

// NewRedisDenylist builds a Redis-backed denylist.
func NewRedisDenylist(client *redis.Client) Denylist {
	return &redisDenylist{client: client}
}

func (d *redisDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, denylistKeyPrefix+tokenID, "1", ttl).Err()
}

func (d *redisDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, denylistKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// memoryDenylist is a process-local fallback for deployments without Redis
// and for tests.
type memoryDenylist struct {
	mu      sync.Mutex
	expires map[string]time.Time
}

// NewMemoryDenylist builds an in-memory denylist.
func NewMemoryDenylist() Denylist {
	return &memoryDenylist{expires: make(map[string]time.Time)}
}

func (d *memoryDenylist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.expires[tokenID] = time.Now().Add(ttl)
	return nil
}

func (d *memoryDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	deadline, ok := d.expires[tokenID]
	if !ok {
		return false, nil
	}
	if time.Now().After(deadline) {
		delete(d.expires, tokenID)
		return false, nil
	}
	return true, nil
}
