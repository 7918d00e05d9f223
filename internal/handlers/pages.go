package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/models"
	"storefront-service/internal/pages"
	"storefront-service/internal/search"
	"storefront-service/internal/store"
)

// PagesHandler serves content pages and site page generation
type PagesHandler struct {
	base
	projector *pages.Projector
}

func NewPagesHandler(st *store.Store, projector *pages.Projector, logger *logrus.Logger) *PagesHandler {
	return &PagesHandler{base: newBase(st, logger, "pages_handler"), projector: projector}
}

// @Summary List content pages
// @Tags pages
// @Produce json
// @Param q query string false "Search name, slug or content"
// @Success 200 {object} models.ListResponse
// @Router /pages [get]
func (h *PagesHandler) ListPages(c *gin.Context) {
	list(c, search.Pages(h.store.Pages(), c.Query("q")))
}

// @Summary Get content page
// @Tags pages
// @Produce json
// @Param id path string true "Page ID"
// @Success 200 {object} models.SuccessResponse
// @Router /pages/{id} [get]
func (h *PagesHandler) GetPage(c *gin.Context) {
	page, err := h.store.Page(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, page)
}

// @Summary Create content page
// @Tags pages
// @Accept json
// @Produce json
// @Param page body models.CreatePageRequest true "Page"
// @Success 201 {object} models.SuccessResponse
// @Router /pages [post]
func (h *PagesHandler) CreatePage(c *gin.Context) {
	var req models.CreatePageRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd := &store.CreatePageCommand{Input: req}
	if err := h.store.Execute(c.Request.Context(), cmd); err != nil {
		h.respondError(c, err)
		return
	}
	created(c, cmd.Created)
}

// @Summary Update content page
// @Tags pages
// @Accept json
// @Produce json
// @Param id path string true "Page ID"
// @Param page body models.UpdatePageRequest true "Fields to change"
// @Success 200 {object} models.SuccessResponse
// @Router /pages/{id} [put]
func (h *PagesHandler) UpdatePage(c *gin.Context) {
	var req models.UpdatePageRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd := &store.UpdatePageCommand{ID: c.Param("id"), Patch: req}
	if err := h.store.Execute(c.Request.Context(), cmd); err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, cmd.Updated)
}

// @Summary Delete content page
// @Tags pages
// @Param id path string true "Page ID"
// @Success 200 {object} models.SuccessResponse
// @Router /pages/{id} [delete]
func (h *PagesHandler) DeletePage(c *gin.Context) {
	if _, err := h.store.DeletePage(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	deleted(c, "Page")
}

// PreviewSitePages returns the descriptors GenerateSitePages would publish
// @Summary Preview site pages
// @Tags site-pages
// @Produce json
// @Success 200 {object} models.ListResponse
// @Router /site-pages [get]
func (h *PagesHandler) PreviewSitePages(c *gin.Context) {
	list(c, pages.Descriptors(h.store.Snapshot()))
}

// GenerateSitePages publishes a page for every product, category and content page
// plus the shop, cart and checkout routes
// @Summary Generate site pages
// @Tags site-pages
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /site-pages/generate [post]
func (h *PagesHandler) GenerateSitePages(c *gin.Context) {
	result, err := h.projector.GenerateAll(c.Request.Context(), h.store.Snapshot())
	if err != nil {
		h.logger.WithError(err).WithField("failed", result.Failed).Warn("Some site pages were not published")
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "PUBLISH_FAILED",
				Message: err.Error(),
				Details: map[string]interface{}{"published": result.Published, "failed": result.Failed},
			},
			RequestID: c.GetString("request_id"),
		})
		return
	}
	ok(c, result)
}
