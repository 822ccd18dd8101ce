package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/backoffice/catalog-api/internal/core/ports"
)

// jsonPatchContentType is the media type PATCH requests must declare
// (RFC 6902).
const jsonPatchContentType = "application/json-patch+json"

// ProductHandler handles HTTP requests for catalog operations.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// GetAll returns every product, ordered by category then name.
//
// @Summary      List all products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   productResponse
// @Router       /api/product [get]
func (h *ProductHandler) GetAll(c echo.Context) error {
	items, err := h.service.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductListResponse(items))
}

// GetActive returns active products ordered by name.
//
// @Summary      List active products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   productResponse
// @Router       /api/product/active [get]
func (h *ProductHandler) GetActive(c echo.Context) error {
	items, err := h.service.GetActive(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductListResponse(items))
}

// GetByCategory returns active products in the given category.
//
// @Summary      List products by category
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        category  path  string  true  "Category name"
// @Success      200  {array}   productResponse
// @Router       /api/product/category/{category} [get]
func (h *ProductHandler) GetByCategory(c echo.Context) error {
	items, err := h.service.GetByCategory(c.Request().Context(), c.Param("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductListResponse(items))
}

// Search returns active products whose name, description, or category
// contains the term. A blank term lists all active products.
//
// @Summary      Search products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        q  query  string  false  "Search term (case-sensitive substring)"
// @Success      200  {array}   productResponse
// @Router       /api/product/search [get]
func (h *ProductHandler) Search(c echo.Context) error {
	items, err := h.service.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductListResponse(items))
}

// GetByPriceRange returns active products priced within [min, max],
// ordered by price.
//
// @Summary      List products by price range
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        min  query  string  true  "Minimum price (inclusive)"
// @Param        max  query  string  true  "Maximum price (inclusive)"
// @Success      200  {array}   productResponse
// @Failure      400  {object}  errorResponse
// @Router       /api/product/price-range [get]
func (h *ProductHandler) GetByPriceRange(c echo.Context) error {
	min, err := decimal.NewFromString(c.QueryParam("min"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "min must be a decimal number")
	}
	max, err := decimal.NewFromString(c.QueryParam("max"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "max must be a decimal number")
	}

	items, err := h.service.GetByPriceRange(c.Request().Context(), ports.PriceRangeInput{Min: min, Max: max})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductListResponse(items))
}

// Categories returns the distinct categories of active products.
//
// @Summary      List categories
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  categoriesResponse
// @Router       /api/product/categories [get]
func (h *ProductHandler) Categories(c echo.Context) error {
	cats, err := h.service.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categoriesResponse{Categories: cats})
}

// Get returns a single product by id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/product/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}

// Create adds a new product.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  productRequest  true  "Product details"
// @Success      201  {object}  productResponse
// @Failure      400  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/product [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), toCreateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toProductResponse(created))
}

// Update replaces all mutable fields of a product.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string          true  "Product id"
// @Param        body  body  productRequest  true  "Product details"
// @Success      200  {object}  productResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/product/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.Update(c.Request().Context(), c.Param("id"), toUpdateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(updated))
}

// Patch applies a JSON Patch document to a product. The request must use
// the application/json-patch+json media type and carry at least one
// operation; an empty operation list is rejected here, before the service.
//
// @Summary      Partially update a product (JSON Patch)
// @Tags         products
// @Accept       json-patch+json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                 true  "Product id"
// @Param        body  body  []ports.PatchOperation true  "RFC 6902 operations"
// @Success      200  {object}  productResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/product/{id} [patch]
func (h *ProductHandler) Patch(c echo.Context) error {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if mediaType, _, _ := strings.Cut(contentType, ";"); strings.TrimSpace(mediaType) != jsonPatchContentType {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, "Content-Type must be "+jsonPatchContentType)
	}

	var ops []ports.PatchOperation
	if err := c.Bind(&ops); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patch document")
	}
	if len(ops) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no patch operations provided")
	}

	patched, err := h.service.Patch(c.Request().Context(), c.Param("id"), ops)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(patched))
}

// Delete removes a product. Deleting an unknown id, including a second
// delete of the same id, yields 404.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Product id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  errorResponse
// @Router       /api/product/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "product deleted"})
}

// SetStock sets the stock count of a product.
//
// @Summary      Set product stock
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string        true  "Product id"
// @Param        body  body  stockRequest  true  "New stock count"
// @Success      200  {object}  productResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/product/{id}/stock [put]
func (h *ProductHandler) SetStock(c echo.Context) error {
	var req stockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.SetStock(c.Request().Context(), c.Param("id"), *req.Stock)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(updated))
}
