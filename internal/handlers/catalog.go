package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/models"
	"storefront-service/internal/search"
	"storefront-service/internal/store"
)

// CatalogHandler serves categories and collections
type CatalogHandler struct {
	base
}

func NewCatalogHandler(st *store.Store, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{base: newBase(st, logger, "catalog_handler")}
}

// @Summary List categories
// @Tags categories
// @Produce json
// @Param q query string false "Search name or description"
// @Success 200 {object} models.ListResponse
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	list(c, search.Categories(h.store.Categories(), c.Query("q")))
}

// @Summary Get category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} models.SuccessResponse
// @Router /categories/{id} [get]
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	category, err := h.store.Category(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, category)
}

// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body models.CreateCategoryRequest true "Category"
// @Success 201 {object} models.SuccessResponse
// @Router /categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd := &store.CreateCategoryCommand{Input: req}
	if err := h.store.Execute(c.Request.Context(), cmd); err != nil {
		h.respondError(c, err)
		return
	}
	created(c, cmd.Created)
}

// @Summary Update category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param category body models.UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} models.SuccessResponse
// @Router /categories/{id} [put]
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	var req models.UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd := &store.UpdateCategoryCommand{ID: c.Param("id"), Patch: req}
	if err := h.store.Execute(c.Request.Context(), cmd); err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, cmd.Updated)
}

// @Summary Delete category
// @Tags categories
// @Param id path string true "Category ID"
// @Success 200 {object} models.SuccessResponse
// @Router /categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	if _, err := h.store.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	deleted(c, "Category")
}

// @Summary List collections
// @Tags collections
// @Produce json
// @Success 200 {object} models.ListResponse
// @Router /collections [get]
func (h *CatalogHandler) ListCollections(c *gin.Context) {
	list(c, h.store.Collections())
}

// @Summary Get collection
// @Tags collections
// @Produce json
// @Param id path string true "Collection ID"
// @Success 200 {object} models.SuccessResponse
// @Router /collections/{id} [get]
func (h *CatalogHandler) GetCollection(c *gin.Context) {
	collection, err := h.store.Collection(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, collection)
}

// CollectionProducts evaluates the collection against the current catalog
// @Summary Products in collection
// @Tags collections
// @Produce json
// @Param id path string true "Collection ID"
// @Success 200 {object} models.ListResponse
// @Router /collections/{id}/products [get]
func (h *CatalogHandler) CollectionProducts(c *gin.Context) {
	collection, err := h.store.Collection(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	list(c, search.MatchCollection(collection, h.store.Products()))
}

// @Summary Create collection
// @Tags collections
// @Accept json
// @Produce json
// @Param collection body models.CreateCollectionRequest true "Collection"
// @Success 201 {object} models.SuccessResponse
// @Router /collections [post]
func (h *CatalogHandler) CreateCollection(c *gin.Context) {
	var req models.CreateCollectionRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd := &store.CreateCollectionCommand{Input: req}
	if err := h.store.Execute(c.Request.Context(), cmd); err != nil {
		h.respondError(c, err)
		return
	}
	created(c, cmd.Created)
}

// @Summary Update collection
// @Tags collections
// @Accept json
// @Produce json
// @Param id path string true "Collection ID"
// @Param collection body models.UpdateCollectionRequest true "Fields to change"
// @Success 200 {object} models.SuccessResponse
// @Router /collections/{id} [put]
func (h *CatalogHandler) UpdateCollection(c *gin.Context) {
	var req models.UpdateCollectionRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd := &store.UpdateCollectionCommand{ID: c.Param("id"), Patch: req}
	if err := h.store.Execute(c.Request.Context(), cmd); err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, cmd.Updated)
}

// @Summary Delete collection
// @Tags collections
// @Param id path string true "Collection ID"
// @Success 200 {object} models.SuccessResponse
// @Router /collections/{id} [delete]
func (h *CatalogHandler) DeleteCollection(c *gin.Context) {
	if _, err := h.store.DeleteCollection(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	deleted(c, "Collection")
}
