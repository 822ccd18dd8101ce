package handler

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/backoffice/catalog-api/internal/core/domain"
	"github.com/backoffice/catalog-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req productRequest) ports.CreateProductInput {
	return ports.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		IsActive:    req.IsActive,
	}
}

func toUpdateInput(req productRequest) ports.UpdateProductInput {
	return ports.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		IsActive:    req.IsActive,
	}
}

// --- Entity → HTTP response ---

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		PriceFormatted: formatRupiah(p.Price),
		Stock:          p.Stock,
		ImageURL:       p.ImageURL,
		Category:       p.Category,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt.UTC(),
		UpdatedAt:      p.UpdatedAt,
	}
}

func toProductListResponse(items []*domain.Product) []productResponse {
	out := make([]productResponse, len(items))
	for i, p := range items {
		out[i] = toProductResponse(p)
	}
	return out
}

// formatRupiah renders a price in Indonesian currency notation,
// e.g. 10000 → "Rp10.000,00".
func formatRupiah(d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := "Rp" + b.String() + "," + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
