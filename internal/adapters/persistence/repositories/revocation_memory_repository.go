package repositories

import (
	"context"
	"sync"
	"time"
)

// memoryRevocationRepository keeps revoked token hashes in process memory.
// Entries are dropped lazily once the token would have expired anyway.
type memoryRevocationRepository struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemoryRevocationRepository creates an in-process revocation list
func NewMemoryRevocationRepository() RevocationRepository {
	return &memoryRevocationRepository{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke marks tokenHash revoked until the given time
func (r *memoryRevocationRepository) Revoke(ctx context.Context, tokenHash string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.purge()
	if until.After(r.now()) {
		r.revoked[tokenHash] = until
	}
	return nil
}

// IsRevoked reports whether tokenHash is on the list
func (r *memoryRevocationRepository) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	until, ok := r.revoked[tokenHash]
	if !ok {
		return false, nil
	}
	if !until.After(r.now()) {
		delete(r.revoked, tokenHash)
		return false, nil
	}
	return true, nil
}

func (r *memoryRevocationRepository) purge() {
	now := r.now()
	for hash, until := range r.revoked {
		if !until.After(now) {
			delete(r.revoked, hash)
		}
	}
}
