package wishlist

import "github.com/bookcourier/bookcourier/internal/domain"

// Cache persists wishlist items across restarts. Only items are cached;
// loading and error state are transient and always start fresh. The cache is
// device-scoped convenience data, never a substitute for server truth.
type Cache interface {
	Load() ([]domain.WishlistItem, error)
	Save(items []domain.WishlistItem) error
	Clear() error
}

// NopCache is a Cache that remembers nothing. Used for ephemeral runs and
// in tests that do not care about persistence.
type NopCache struct{}

func (NopCache) Load() ([]domain.WishlistItem, error) { return nil, nil }
func (NopCache) Save([]domain.WishlistItem) error     { return nil }
func (NopCache) Clear() error                         { return nil }
