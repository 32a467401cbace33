package ports

import (
	"context"

	"github.com/99minutos/products-api/internal/core/domain"
)

// ProductFilter selects products. Empty fields are not filtered on.
type ProductFilter struct {
	ID     string
	Owner  string
	Status domain.ProductStatus
}

// ProductStore defines persistence operations for products.
type ProductStore interface {
	// Create assigns ID, timestamps and version, then inserts p.
	Create(ctx context.Context, p *domain.Product) error
	// FindOne returns domain.ErrProductNotFound when nothing matches.
	FindOne(ctx context.Context, filter ProductFilter) (*domain.Product, error)
	// List returns one page of matches in insertion order and the total match count.
	List(ctx context.Context, filter ProductFilter, offset, limit int) ([]*domain.Product, int64, error)
	// Save persists p if its Version is still current, bumping Version and
	// UpdatedAt. A stale Version yields domain.ErrProductConflict.
	Save(ctx context.Context, p *domain.Product) error
}

// IdempotencyStore remembers which product an owner's idempotency key produced.
type IdempotencyStore interface {
	Lookup(ctx context.Context, owner, key string) (productID string, found bool, err error)
	Remember(ctx context.Context, owner, key, productID string) error
}
