package ports

import (
	"context"

	"github.com/99minutos/products-api/internal/core/domain"
)

// CreateProductInput carries all data needed to create a product.
type CreateProductInput struct {
	Name           string
	Price          float64
	IdempotencyKey string
}

// CreateProductResult is returned by CreateProduct.
type CreateProductResult struct {
	Product *domain.Product
	// Replayed is true when the Idempotency-Key matched an earlier creation.
	Replayed bool
}

// ProductPatch holds the fields of a partial update; nil means unchanged.
type ProductPatch struct {
	Name  *string
	Price *float64
}

// ProductPage is one page of the requester's active products.
type ProductPage struct {
	Page         int
	Limit        int
	TotalRecords int64
	TotalPages   int
	Data         []*domain.Product
}

// ProductValidator is the asynchronous creation gate. The returned channel
// yields exactly one verdict unless ctx ends first.
type ProductValidator interface {
	Validate(ctx context.Context, owner string, candidate domain.ProductCandidate) <-chan bool
}

// ProductService defines use-case operations for products.
type ProductService interface {
	CreateProduct(ctx context.Context, input CreateProductInput, requester domain.SessionClaims) (*CreateProductResult, error)
	ListProducts(ctx context.Context, requester domain.SessionClaims, page, limit int) (*ProductPage, error)
	UpdateProduct(ctx context.Context, id string, requester domain.SessionClaims, patch ProductPatch) (*domain.Product, error)
	InactivateProduct(ctx context.Context, id string, requester domain.SessionClaims) (*domain.Product, error)
}
