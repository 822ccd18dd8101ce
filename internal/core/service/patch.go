package service

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/shopspring/decimal"

	"github.com/backoffice/catalog-api/internal/core/domain"
	"github.com/backoffice/catalog-api/internal/core/ports"
)

// productPatch is the partial representation the patch document is applied
// to. Every field is optional; after applying, only non-nil fields are
// copied back onto the entity. Sparse operation sets therefore never null
// out untouched fields, at the cost of not being able to set a field to an
// explicit null through a patch.
type productPatch struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
	Category    *string          `json:"category,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

func patchFromProduct(p *domain.Product) productPatch {
	return productPatch{
		Name:        &p.Name,
		Description: &p.Description,
		Price:       &p.Price,
		Stock:       &p.Stock,
		ImageURL:    &p.ImageURL,
		Category:    &p.Category,
		IsActive:    &p.IsActive,
	}
}

// applyPatch runs the full merge: seed the partial representation from the
// product, apply the RFC 6902 document to its JSON form, and copy the
// surviving fields back onto a copy of the product. Any failing operation
// (unknown path, failed test, malformed value) aborts the whole merge.
func applyPatch(p *domain.Product, ops []ports.PatchOperation) (*domain.Product, error) {
	if len(ops) == 0 {
		return nil, fmt.Errorf("%w: no operations", domain.ErrInvalidPatch)
	}

	rawOps, err := json.Marshal(ops)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPatch, err)
	}
	patch, err := jsonpatch.DecodePatch(rawOps)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPatch, err)
	}

	seed, err := json.Marshal(patchFromProduct(p))
	if err != nil {
		return nil, err
	}

	patched, err := patch.Apply(seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPatch, err)
	}

	var result productPatch
	if err := json.Unmarshal(patched, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPatch, err)
	}

	out := *p
	if result.Name != nil {
		out.Name = *result.Name
	}
	if result.Description != nil {
		out.Description = *result.Description
	}
	if result.Price != nil {
		out.Price = *result.Price
	}
	if result.Stock != nil {
		out.Stock = *result.Stock
	}
	if result.ImageURL != nil {
		out.ImageURL = *result.ImageURL
	}
	if result.Category != nil {
		out.Category = *result.Category
	}
	if result.IsActive != nil {
		out.IsActive = *result.IsActive
	}
	return &out, nil
}
