package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/backoffice/catalog-api/internal/api/metrics"
	"github.com/backoffice/catalog-api/internal/core/domain"
	"github.com/backoffice/catalog-api/internal/core/ports"
)

// ProductCache abstracts the read cache (Redis). A miss is (nil, nil);
// cache failures must never fail the request.
type ProductCache interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
	Set(ctx context.Context, p *domain.Product) error
	Invalidate(ctx context.Context, id string) error
}

type ProductService struct {
	repo  ports.ProductRepository
	cache ProductCache
	log   zerolog.Logger
}

// NewProductService builds a ProductService. cache may be nil, in which
// case every read goes straight to the repository.
func NewProductService(repo ports.ProductRepository, cache ProductCache, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, cache: cache, log: log}
}

func (s *ProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	now := time.Now().UTC()
	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		IsActive:    input.IsActive,
		CreatedAt:   now,
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByName(ctx, product.Name, "")
	if err != nil {
		s.log.Error().Err(err).Str("name", product.Name).Msg("name uniqueness check failed")
		return nil, err
	}
	if taken {
		return nil, domain.ErrProductExists
	}

	created, err := s.repo.Insert(ctx, product)
	if err != nil {
		s.log.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return nil, err
	}

	metrics.ProductsCreatedTotal.WithLabelValues(created.Category).Inc()
	s.log.Info().Str("product_id", created.ID).Str("name", created.Name).Msg("product created")
	return created, nil
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			s.log.Warn().Err(err).Str("product_id", id).Msg("cache read failed, falling back to store")
		} else if cached != nil {
			metrics.ProductCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		} else {
			metrics.ProductCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, product); err != nil {
			s.log.Warn().Err(err).Str("product_id", id).Msg("cache write failed")
		}
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id string, input ports.UpdateProductInput) (*domain.Product, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	existing.Name = input.Name
	existing.Description = input.Description
	existing.Price = input.Price
	existing.Stock = input.Stock
	existing.ImageURL = input.ImageURL
	existing.Category = input.Category
	existing.IsActive = input.IsActive
	existing.UpdatedAt = &now

	return s.save(ctx, existing)
}

// Patch applies an ordered list of operations through the partial
// representation and persists the merged result. The operation list applies
// atomically: any failing op leaves the store untouched.
func (s *ProductService) Patch(ctx context.Context, id string, ops []ports.PatchOperation) (*domain.Product, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged, err := applyPatch(existing, ops)
	if err != nil {
		s.log.Warn().Err(err).Str("product_id", id).Msg("patch rejected")
		return nil, err
	}

	now := time.Now().UTC()
	merged.UpdatedAt = &now

	updated, err := s.save(ctx, merged)
	if err != nil {
		return nil, err
	}

	metrics.ProductsPatchedTotal.Inc()
	s.log.Info().Str("product_id", id).Int("ops", len(ops)).Msg("product patched")
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	s.log.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

func (s *ProductService) SetStock(ctx context.Context, id string, stock int) (*domain.Product, error) {
	if stock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative", domain.ErrValidation)
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	existing.Stock = stock
	existing.UpdatedAt = &now

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		s.log.Error().Err(err).Str("product_id", id).Msg("failed to update stock")
		return nil, err
	}
	s.invalidate(ctx, id)
	return updated, nil
}

func (s *ProductService) GetAll(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.FindAll(ctx)
}

func (s *ProductService) GetActive(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.FindActive(ctx)
}

func (s *ProductService) GetByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.repo.FindByCategory(ctx, category)
}

// Search falls back to the active listing when the term is blank. The match
// itself is case-sensitive (the existence check is not; both behaviours are
// pinned by tests).
func (s *ProductService) Search(ctx context.Context, term string) ([]*domain.Product, error) {
	if strings.TrimSpace(term) == "" {
		return s.repo.FindActive(ctx)
	}
	return s.repo.Search(ctx, term)
}

func (s *ProductService) GetByPriceRange(ctx context.Context, input ports.PriceRangeInput) ([]*domain.Product, error) {
	if input.Min.IsNegative() {
		return nil, fmt.Errorf("%w: min price must not be negative", domain.ErrValidation)
	}
	if input.Min.GreaterThan(input.Max) {
		return nil, fmt.Errorf("%w: min price must not exceed max price", domain.ErrValidation)
	}
	return s.repo.FindByPriceRange(ctx, input.Min, input.Max)
}

func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

// save enforces the rename-uniqueness rule, persists, and drops any stale
// cache entry.
func (s *ProductService) save(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByName(ctx, p.Name, p.ID)
	if err != nil {
		s.log.Error().Err(err).Str("name", p.Name).Msg("name uniqueness check failed")
		return nil, err
	}
	if taken {
		return nil, domain.ErrProductExists
	}

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Str("product_id", p.ID).Msg("failed to update product")
		return nil, err
	}

	s.invalidate(ctx, p.ID)
	return updated, nil
}

func (s *ProductService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("product_id", id).Msg("cache invalidation failed")
	}
}
