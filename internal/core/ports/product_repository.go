package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/backoffice/catalog-api/internal/core/domain"
)

// ProductRepository defines persistence operations for the catalog.
//
// Read ordering is part of the contract: FindAll sorts by category then
// name, FindByPriceRange by price, every other listing by name.
type ProductRepository interface {
	Insert(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	// Delete removes the product. Returns domain.ErrProductNotFound when no
	// document matched, so a second delete of the same id is a not-found.
	Delete(ctx context.Context, id string) error

	FindAll(ctx context.Context) ([]*domain.Product, error)
	FindActive(ctx context.Context) ([]*domain.Product, error)
	FindByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	// Search matches the term as a case-sensitive substring of name,
	// description, or category, restricted to active products.
	Search(ctx context.Context, term string) ([]*domain.Product, error)
	FindByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)

	// ExistsByName reports whether any product other than excludeID already
	// uses the name. The comparison is case-insensitive.
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)
}
