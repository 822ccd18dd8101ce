package ports

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/backoffice/catalog-api/internal/core/domain"
)

// CreateProductInput carries all data needed to create a new product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	ImageURL    string
	Category    string
	IsActive    bool
}

// UpdateProductInput is a full replacement of the mutable product fields.
type UpdateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	ImageURL    string
	Category    string
	IsActive    bool
}

// PatchOperation is a single RFC 6902 operation as received on the wire.
// Value stays raw so the merge step decides how to interpret it.
type PatchOperation struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	From  string          `json:"from,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
}

// PriceRangeInput carries the bounds for a price-range query. Min must not
// exceed Max and neither may be negative.
type PriceRangeInput struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// ProductService defines the catalog use cases.
type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error)
	// Patch applies an ordered list of operations to the product. The whole
	// list applies or nothing does.
	Patch(ctx context.Context, id string, ops []PatchOperation) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	SetStock(ctx context.Context, id string, stock int) (*domain.Product, error)

	GetAll(ctx context.Context) ([]*domain.Product, error)
	GetActive(ctx context.Context) ([]*domain.Product, error)
	GetByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	Search(ctx context.Context, term string) ([]*domain.Product, error)
	GetByPriceRange(ctx context.Context, input PriceRangeInput) ([]*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
}
