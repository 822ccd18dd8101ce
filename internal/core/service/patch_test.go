package service

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/backoffice/catalog-api/internal/core/domain"
	"github.com/backoffice/catalog-api/internal/core/ports"
)

func patchFixture() *domain.Product {
	return &domain.Product{
		ID:          "p1",
		Name:        "Laptop",
		Description: "Thin and light",
		Price:       decimal.NewFromInt(1500),
		Stock:       10,
		Category:    "electronics",
		IsActive:    true,
		CreatedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestApplyPatch_MoveOp(t *testing.T) {
	p := patchFixture()
	out, err := applyPatch(p, []ports.PatchOperation{
		{Op: "move", Path: "/description", From: "/name"},
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if out.Description != "Laptop" {
		t.Fatalf("expected description to receive moved value, got %q", out.Description)
	}
	// The source field vanishes from the partial document, so the entity
	// keeps its old name.
	if out.Name != "Laptop" {
		t.Fatalf("expected name preserved, got %q", out.Name)
	}
}

func TestApplyPatch_CopyOp(t *testing.T) {
	p := patchFixture()
	out, err := applyPatch(p, []ports.PatchOperation{
		{Op: "copy", Path: "/description", From: "/category"},
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if out.Description != "electronics" {
		t.Fatalf("expected copied value, got %q", out.Description)
	}
	if out.Category != "electronics" {
		t.Fatalf("copy must not disturb the source, got %q", out.Category)
	}
}

func TestApplyPatch_PassingTestOp(t *testing.T) {
	p := patchFixture()
	out, err := applyPatch(p, []ports.PatchOperation{
		{Op: "test", Path: "/stock", Value: json.RawMessage(`10`)},
		{Op: "replace", Path: "/stock", Value: json.RawMessage(`7`)},
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if out.Stock != 7 {
		t.Fatalf("expected stock 7, got %d", out.Stock)
	}
}

func TestApplyPatch_TypeMismatch(t *testing.T) {
	p := patchFixture()
	_, err := applyPatch(p, []ports.PatchOperation{
		{Op: "replace", Path: "/stock", Value: json.RawMessage(`"many"`)},
	})
	if !errors.Is(err, domain.ErrInvalidPatch) {
		t.Fatalf("expected ErrInvalidPatch, got %v", err)
	}
}

func TestApplyPatch_InputNotMutated(t *testing.T) {
	p := patchFixture()
	_, err := applyPatch(p, []ports.PatchOperation{
		{Op: "replace", Path: "/name", Value: json.RawMessage(`"Ultrabook"`)},
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if p.Name != "Laptop" {
		t.Fatalf("input product mutated: %q", p.Name)
	}
}
