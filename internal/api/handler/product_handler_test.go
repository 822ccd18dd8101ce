package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/backoffice/catalog-api/internal/core/domain"
	"github.com/backoffice/catalog-api/internal/core/ports"
)

type stubProductService struct {
	createFn     func(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error)
	getByIDFn    func(ctx context.Context, id string) (*domain.Product, error)
	updateFn     func(ctx context.Context, id string, input ports.UpdateProductInput) (*domain.Product, error)
	patchFn      func(ctx context.Context, id string, ops []ports.PatchOperation) (*domain.Product, error)
	deleteFn     func(ctx context.Context, id string) error
	setStockFn   func(ctx context.Context, id string, stock int) (*domain.Product, error)
	getAllFn     func(ctx context.Context) ([]*domain.Product, error)
	getActiveFn  func(ctx context.Context) ([]*domain.Product, error)
	byCategoryFn func(ctx context.Context, category string) ([]*domain.Product, error)
	searchFn     func(ctx context.Context, term string) ([]*domain.Product, error)
	priceRangeFn func(ctx context.Context, input ports.PriceRangeInput) ([]*domain.Product, error)
	categoriesFn func(ctx context.Context) ([]string, error)
}

func (s *stubProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	return s.createFn(ctx, input)
}
func (s *stubProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.getByIDFn(ctx, id)
}
func (s *stubProductService) Update(ctx context.Context, id string, input ports.UpdateProductInput) (*domain.Product, error) {
	return s.updateFn(ctx, id, input)
}
func (s *stubProductService) Patch(ctx context.Context, id string, ops []ports.PatchOperation) (*domain.Product, error) {
	return s.patchFn(ctx, id, ops)
}
func (s *stubProductService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}
func (s *stubProductService) SetStock(ctx context.Context, id string, stock int) (*domain.Product, error) {
	return s.setStockFn(ctx, id, stock)
}
func (s *stubProductService) GetAll(ctx context.Context) ([]*domain.Product, error) {
	return s.getAllFn(ctx)
}
func (s *stubProductService) GetActive(ctx context.Context) ([]*domain.Product, error) {
	return s.getActiveFn(ctx)
}
func (s *stubProductService) GetByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.byCategoryFn(ctx, category)
}
func (s *stubProductService) Search(ctx context.Context, term string) ([]*domain.Product, error) {
	return s.searchFn(ctx, term)
}
func (s *stubProductService) GetByPriceRange(ctx context.Context, input ports.PriceRangeInput) ([]*domain.Product, error) {
	return s.priceRangeFn(ctx, input)
}
func (s *stubProductService) Categories(ctx context.Context) ([]string, error) {
	return s.categoriesFn(ctx)
}

func sampleProduct() *domain.Product {
	return &domain.Product{
		ID:        "p1",
		Name:      "Laptop",
		Price:     decimal.NewFromInt(1500),
		Stock:     10,
		Category:  "electronics",
		IsActive:  true,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newProductContext(t *testing.T, method, target, body, contentType string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestProductHandler_Create_Success(t *testing.T) {
	svc := &stubProductService{
		createFn: func(_ context.Context, input ports.CreateProductInput) (*domain.Product, error) {
			if input.Name != "Laptop" {
				t.Fatalf("unexpected name %q", input.Name)
			}
			if !input.Price.Equal(decimal.RequireFromString("1500.50")) {
				t.Fatalf("unexpected price %s", input.Price)
			}
			p := sampleProduct()
			p.Price = input.Price
			return p, nil
		},
	}
	h := NewProductHandler(svc)

	body := `{"name":"Laptop","price":1500.50,"stock":10,"category":"electronics","is_active":true}`
	c, rec := newProductContext(t, http.MethodPost, "/", body, echo.MIMEApplicationJSON)
	if err := h.Create(c); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp productResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.ID != "p1" || resp.PriceFormatted == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestProductHandler_Create_MissingName(t *testing.T) {
	h := NewProductHandler(&stubProductService{
		createFn: func(context.Context, ports.CreateProductInput) (*domain.Product, error) {
			t.Fatal("service must not be called on validation failure")
			return nil, nil
		},
	})

	c, _ := newProductContext(t, http.MethodPost, "/", `{"price":10}`, echo.MIMEApplicationJSON)
	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestProductHandler_Patch_Success(t *testing.T) {
	var gotOps []ports.PatchOperation
	svc := &stubProductService{
		patchFn: func(_ context.Context, id string, ops []ports.PatchOperation) (*domain.Product, error) {
			if id != "p1" {
				t.Fatalf("unexpected id %q", id)
			}
			gotOps = ops
			p := sampleProduct()
			p.Name = "Ultrabook"
			return p, nil
		},
	}
	h := NewProductHandler(svc)

	body := `[{"op":"replace","path":"/name","value":"Ultrabook"}]`
	c, rec := newProductContext(t, http.MethodPatch, "/", body, jsonPatchContentType)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := h.Patch(c); err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(gotOps) != 1 || gotOps[0].Op != "replace" || gotOps[0].Path != "/name" {
		t.Fatalf("unexpected ops passed to service: %+v", gotOps)
	}
}

func TestProductHandler_Patch_WrongContentType(t *testing.T) {
	h := NewProductHandler(&stubProductService{
		patchFn: func(context.Context, string, []ports.PatchOperation) (*domain.Product, error) {
			t.Fatal("service must not be called on wrong media type")
			return nil, nil
		},
	})

	body := `[{"op":"replace","path":"/name","value":"Ultrabook"}]`
	c, _ := newProductContext(t, http.MethodPatch, "/", body, echo.MIMEApplicationJSON)
	err := h.Patch(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %v", err)
	}
}

// A charset parameter on the media type is fine.
func TestProductHandler_Patch_ContentTypeWithParams(t *testing.T) {
	svc := &stubProductService{
		patchFn: func(context.Context, string, []ports.PatchOperation) (*domain.Product, error) {
			return sampleProduct(), nil
		},
	}
	h := NewProductHandler(svc)

	body := `[{"op":"replace","path":"/name","value":"Ultrabook"}]`
	c, rec := newProductContext(t, http.MethodPatch, "/", body, jsonPatchContentType+"; charset=utf-8")
	if err := h.Patch(c); err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProductHandler_Patch_EmptyOps(t *testing.T) {
	h := NewProductHandler(&stubProductService{
		patchFn: func(context.Context, string, []ports.PatchOperation) (*domain.Product, error) {
			t.Fatal("service must not be called with an empty document")
			return nil, nil
		},
	})

	c, _ := newProductContext(t, http.MethodPatch, "/", `[]`, jsonPatchContentType)
	err := h.Patch(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestProductHandler_GetByPriceRange_BadQuery(t *testing.T) {
	h := NewProductHandler(&stubProductService{
		priceRangeFn: func(context.Context, ports.PriceRangeInput) ([]*domain.Product, error) {
			t.Fatal("service must not be called with unparsable bounds")
			return nil, nil
		},
	})

	c, _ := newProductContext(t, http.MethodGet, "/?min=abc&max=10", "", "")
	err := h.GetByPriceRange(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestProductHandler_GetByPriceRange_Success(t *testing.T) {
	svc := &stubProductService{
		priceRangeFn: func(_ context.Context, input ports.PriceRangeInput) ([]*domain.Product, error) {
			if !input.Min.Equal(decimal.RequireFromString("10.5")) || !input.Max.Equal(decimal.NewFromInt(100)) {
				t.Fatalf("unexpected bounds %s..%s", input.Min, input.Max)
			}
			return []*domain.Product{sampleProduct()}, nil
		},
	}
	h := NewProductHandler(svc)

	c, rec := newProductContext(t, http.MethodGet, "/?min=10.5&max=100", "", "")
	if err := h.GetByPriceRange(c); err != nil {
		t.Fatalf("price range failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProductHandler_SetStock_MissingField(t *testing.T) {
	h := NewProductHandler(&stubProductService{
		setStockFn: func(context.Context, string, int) (*domain.Product, error) {
			t.Fatal("service must not be called on validation failure")
			return nil, nil
		},
	})

	c, _ := newProductContext(t, http.MethodPut, "/", `{}`, echo.MIMEApplicationJSON)
	err := h.SetStock(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestProductHandler_SetStock_ZeroIsValid(t *testing.T) {
	svc := &stubProductService{
		setStockFn: func(_ context.Context, id string, stock int) (*domain.Product, error) {
			if stock != 0 {
				t.Fatalf("expected stock 0, got %d", stock)
			}
			p := sampleProduct()
			p.Stock = 0
			return p, nil
		},
	}
	h := NewProductHandler(svc)

	c, rec := newProductContext(t, http.MethodPut, "/", `{"stock":0}`, echo.MIMEApplicationJSON)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	if err := h.SetStock(c); err != nil {
		t.Fatalf("set stock failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProductHandler_Search_PassesTerm(t *testing.T) {
	svc := &stubProductService{
		searchFn: func(_ context.Context, term string) ([]*domain.Product, error) {
			if term != "lap" {
				t.Fatalf("unexpected term %q", term)
			}
			return nil, nil
		},
	}
	h := NewProductHandler(svc)

	c, rec := newProductContext(t, http.MethodGet, "/?q=lap", "", "")
	if err := h.Search(c); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	// An empty result still renders a JSON array, not null.
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %q", rec.Body.String())
	}
}

func TestProductHandler_Categories(t *testing.T) {
	svc := &stubProductService{
		categoriesFn: func(context.Context) ([]string, error) {
			return []string{"books", "electronics"}, nil
		},
	}
	h := NewProductHandler(svc)

	c, rec := newProductContext(t, http.MethodGet, "/", "", "")
	if err := h.Categories(c); err != nil {
		t.Fatalf("categories failed: %v", err)
	}

	var resp categoriesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Categories) != 2 || resp.Categories[0] != "books" {
		t.Fatalf("unexpected categories: %+v", resp.Categories)
	}
}
