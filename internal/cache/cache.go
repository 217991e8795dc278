package cache

import (
	"context"

	"github.com/matchbook-app/matchbook-client/internal/domain"
)

// Store persists the single local cache entry: the serialized profile under
// a fixed key. The synchronization engine is its only writer.
type Store interface {
	// Load returns the cached profile, or (nil, nil) when no entry exists.
	Load(ctx context.Context) (*domain.Profile, error)

	// Save writes the profile as the cache entry, replacing any previous one.
	Save(ctx context.Context, profile *domain.Profile) error

	// Delete removes the cache entry. Deleting an absent entry is not an
	// error.
	Delete(ctx context.Context) error

	// Close releases the underlying storage handle.
	Close() error
}
