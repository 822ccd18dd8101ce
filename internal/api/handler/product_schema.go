package handler

import (
	"time"

	"github.com/shopspring/decimal"
)

// --- Request types ---

// productRequest is shared by create (POST) and full update (PUT). Price has
// no validate tag on purpose: decimal bounds are a business rule enforced by
// the service so the same check covers patch merges too.
type productRequest struct {
	Name        string          `json:"name"                  validate:"required,max=150"`
	Description string          `json:"description,omitempty" validate:"max=1000"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"                 validate:"gte=0"`
	ImageURL    string          `json:"image_url,omitempty"   validate:"omitempty,url,max=500"`
	Category    string          `json:"category,omitempty"    validate:"max=100"`
	IsActive    bool            `json:"is_active"`
}

type stockRequest struct {
	Stock *int `json:"stock" validate:"required,gte=0"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes.

type productResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	PriceFormatted string          `json:"price_formatted"`
	Stock          int             `json:"stock"`
	ImageURL       string          `json:"image_url,omitempty"`
	Category       string          `json:"category,omitempty"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      *time.Time      `json:"updated_at,omitempty"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}
