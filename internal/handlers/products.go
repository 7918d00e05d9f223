package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/models"
	"storefront-service/internal/search"
	"storefront-service/internal/store"
)

type ProductsHandler struct {
	base
}

func NewProductsHandler(st *store.Store, logger *logrus.Logger) *ProductsHandler {
	return &ProductsHandler{base: newBase(st, logger, "products_handler")}
}

// ListProducts lists products
// @Summary List products
// @Description Substring search over name, SKU and category; optional status and category filters
// @Tags products
// @Produce json
// @Param q query string false "Search term"
// @Param status query string false "active, draft or archived"
// @Param category query string false "Exact category name"
// @Success 200 {object} models.ListResponse
// @Router /products [get]
func (h *ProductsHandler) ListProducts(c *gin.Context) {
	products := search.Products(h.store.Products(), c.Query("q"))
	if status := c.Query("status"); status != "" {
		products = keep(products, func(p models.Product) bool { return string(p.Status) == status })
	}
	if category := c.Query("category"); category != "" {
		products = keep(products, func(p models.Product) bool { return strings.EqualFold(p.Category, category) })
	}
	list(c, products)
}

// GetProduct returns one product with its variants
// @Summary Get product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (h *ProductsHandler) GetProduct(c *gin.Context) {
	product, err := h.store.Product(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, product)
}

// CreateProduct creates a product. Requires an authenticated actor.
// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Param product body models.CreateProductRequest true "Product"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /products [post]
func (h *ProductsHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd := &store.CreateProductCommand{Input: req}
	if err := h.store.Execute(c.Request.Context(), cmd); err != nil {
		h.respondError(c, err)
		return
	}
	created(c, cmd.Created)
}

// UpdateProduct applies a partial update
// @Summary Update product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body models.UpdateProductRequest true "Fields to change"
// @Success 200 {object} models.SuccessResponse
// @Router /products/{id} [put]
func (h *ProductsHandler) UpdateProduct(c *gin.Context) {
	var req models.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd := &store.UpdateProductCommand{ID: c.Param("id"), Patch: req}
	if err := h.store.Execute(c.Request.Context(), cmd); err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, cmd.Updated)
}

// DeleteProduct deletes a product and its variants
// @Summary Delete product
// @Tags products
// @Param id path string true "Product ID"
// @Param X-Confirm-Delete header bool true "Must be true"
// @Success 200 {object} models.SuccessResponse
// @Failure 428 {object} models.ErrorResponse
// @Router /products/{id} [delete]
func (h *ProductsHandler) DeleteProduct(c *gin.Context) {
	if _, err := h.store.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	deleted(c, "Product")
}

// CreateVariant adds a variant to a product
// @Summary Create variant
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param variant body models.CreateProductVariantRequest true "Variant"
// @Success 201 {object} models.SuccessResponse
// @Router /products/{id}/variants [post]
func (h *ProductsHandler) CreateVariant(c *gin.Context) {
	var req models.CreateProductVariantRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd := &store.CreateVariantCommand{ProductID: c.Param("id"), Input: req}
	if err := h.store.Execute(c.Request.Context(), cmd); err != nil {
		h.respondError(c, err)
		return
	}
	created(c, cmd.Created)
}

// UpdateVariant applies a partial update to a variant
// @Summary Update variant
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param variantId path string true "Variant ID"
// @Param variant body models.UpdateProductVariantRequest true "Fields to change"
// @Success 200 {object} models.SuccessResponse
// @Router /products/{id}/variants/{variantId} [put]
func (h *ProductsHandler) UpdateVariant(c *gin.Context) {
	var req models.UpdateProductVariantRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd := &store.UpdateVariantCommand{ProductID: c.Param("id"), VariantID: c.Param("variantId"), Patch: req}
	if err := h.store.Execute(c.Request.Context(), cmd); err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, cmd.Updated)
}

// DeleteVariant removes a variant from its product
// @Summary Delete variant
// @Tags products
// @Param id path string true "Product ID"
// @Param variantId path string true "Variant ID"
// @Success 200 {object} models.SuccessResponse
// @Router /products/{id}/variants/{variantId} [delete]
func (h *ProductsHandler) DeleteVariant(c *gin.Context) {
	if _, err := h.store.DeleteVariant(c.Request.Context(), c.Param("id"), c.Param("variantId")); err != nil {
		h.respondError(c, err)
		return
	}
	deleted(c, "Variant")
}
