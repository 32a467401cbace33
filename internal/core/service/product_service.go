package service

import (
	"context"
	"errors"
	"math"

	"github.com/rs/zerolog"

	"github.com/99minutos/products-api/internal/core/domain"
	"github.com/99minutos/products-api/internal/core/ports"
	"github.com/99minutos/products-api/internal/pkg/metrics"
)

type ProductService struct {
	repo      ports.ProductStore
	validator ports.ProductValidator
	idem      ports.IdempotencyStore
	logger    zerolog.Logger
}

// NewProductService wires the lifecycle service. idem may be nil, in which
// case Idempotency-Key headers are ignored.
func NewProductService(repo ports.ProductStore, validator ports.ProductValidator, idem ports.IdempotencyStore, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, validator: validator, idem: idem, logger: logger}
}

// CreateProduct runs the creation gate and persists the product for requester.
// Rejected candidates never reach the store. If an idempotency key is provided
// and already seen for the same owner, the earlier product is returned.
func (s *ProductService) CreateProduct(ctx context.Context, input ports.CreateProductInput, requester domain.SessionClaims) (*ports.CreateProductResult, error) {
	if existing := s.replay(ctx, input.IdempotencyKey, requester.Subject); existing != nil {
		return &ports.CreateProductResult{Product: existing, Replayed: true}, nil
	}

	candidate := domain.ProductCandidate{Name: input.Name, Price: input.Price}

	var approved bool
	select {
	case approved = <-s.validator.Validate(ctx, requester.Subject, candidate):
	case <-ctx.Done():
		return nil, domain.Internal("create product: validation", ctx.Err())
	}
	if !approved {
		return nil, domain.ErrProductRejected
	}

	product := &domain.Product{
		Name:      input.Name,
		Price:     input.Price,
		Owner:     requester.Subject,
		Status:    domain.ProductActive,
		Validated: true,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Msg("failed to create product")
		return nil, domain.Internal("create product", err)
	}

	if input.IdempotencyKey != "" && s.idem != nil {
		if err := s.idem.Remember(ctx, requester.Subject, input.IdempotencyKey, product.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("failed to store idempotency key")
		}
	}

	metrics.ProductsCreatedTotal.Inc()
	s.logger.Info().Str("product_id", product.ID).Str("owner", product.Owner).Msg("product created")

	return &ports.CreateProductResult{Product: product}, nil
}

// replay returns the product an earlier request with the same key created, or
// nil when there is none. Lookup failures are logged and treated as a miss.
func (s *ProductService) replay(ctx context.Context, key, owner string) *domain.Product {
	if key == "" || s.idem == nil {
		return nil
	}

	id, found, err := s.idem.Lookup(ctx, owner, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return nil
	}
	if !found {
		return nil
	}

	existing, err := s.repo.FindOne(ctx, ports.ProductFilter{ID: id, Owner: owner})
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotent product not found, creating anyway")
		return nil
	}

	s.logger.Info().Str("idempotency_key", key).Str("product_id", existing.ID).Msg("idempotent replay")
	return existing
}

// ListProducts returns one page of the requester's ACTIVE products. page and
// limit are validated by the caller and assumed positive.
func (s *ProductService) ListProducts(ctx context.Context, requester domain.SessionClaims, page, limit int) (*ports.ProductPage, error) {
	filter := ports.ProductFilter{Owner: requester.Subject, Status: domain.ProductActive}
	offset := pageOffset(page, limit)

	items, total, err := s.repo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, domain.Internal("list products", err)
	}
	if items == nil {
		items = []*domain.Product{}
	}

	return &ports.ProductPage{
		Page:         page,
		Limit:        limit,
		TotalRecords: total,
		TotalPages:   totalPages(total, limit),
		Data:         items,
	}, nil
}

// pageOffset saturates at math.MaxInt so an oversized page lands past the
// end of the collection instead of wrapping negative.
func pageOffset(page, limit int) int {
	if page <= 1 || limit <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

// UpdateProduct applies patch to the product with id. The lookup ignores
// status, so inactive products can still be edited by their owner.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, requester domain.SessionClaims, patch ports.ProductPatch) (*domain.Product, error) {
	product, err := s.ownedProduct(ctx, ports.ProductFilter{ID: id}, requester, "update product")
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}

	if err := s.save(ctx, product, "update product"); err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", product.ID).Msg("product updated")
	return product, nil
}

// InactivateProduct moves an ACTIVE product to INACTIVE. A product that is
// already inactive is reported as not found.
func (s *ProductService) InactivateProduct(ctx context.Context, id string, requester domain.SessionClaims) (*domain.Product, error) {
	product, err := s.ownedProduct(ctx, ports.ProductFilter{ID: id, Status: domain.ProductActive}, requester, "inactivate product")
	if err != nil {
		return nil, err
	}
	if !product.Status.CanTransitionTo(domain.ProductInactive) {
		return nil, domain.ErrProductNotFound
	}

	product.Status = domain.ProductInactive
	if err := s.save(ctx, product, "inactivate product"); err != nil {
		return nil, err
	}

	metrics.ProductsInactivatedTotal.Inc()
	s.logger.Info().Str("product_id", product.ID).Msg("product inactivated")
	return product, nil
}

// ownedProduct loads the product matching filter and checks requester owns it.
func (s *ProductService) ownedProduct(ctx context.Context, filter ports.ProductFilter, requester domain.SessionClaims, op string) (*domain.Product, error) {
	product, err := s.repo.FindOne(ctx, filter)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, err
		}
		return nil, domain.Internal(op, err)
	}

	if !product.OwnedBy(requester.Subject) {
		s.logger.Warn().
			Str("product_id", product.ID).
			Str("requester", requester.Subject).
			Msg(op + ": ownership check failed")
		return nil, domain.ErrForbidden
	}
	return product, nil
}

func (s *ProductService) save(ctx context.Context, product *domain.Product, op string) error {
	if err := s.repo.Save(ctx, product); err != nil {
		if errors.Is(err, domain.ErrProductConflict) || errors.Is(err, domain.ErrProductNotFound) {
			return err
		}
		return domain.Internal(op, err)
	}
	return nil
}
