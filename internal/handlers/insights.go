package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/analytics"
	"storefront-service/internal/reports"
	"storefront-service/internal/search"
	"storefront-service/internal/store"
)

// InsightsHandler serves derived data: analytics, search and exports
type InsightsHandler struct {
	base
}

func NewInsightsHandler(st *store.Store, logger *logrus.Logger) *InsightsHandler {
	return &InsightsHandler{base: newBase(st, logger, "insights_handler")}
}

// @Summary Store analytics
// @Tags analytics
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /analytics [get]
func (h *InsightsHandler) GetAnalytics(c *gin.Context) {
	s := h.store.Snapshot()
	ok(c, analytics.Compute(s.Products, s.Orders, s.Customers))
}

// @Summary Search every collection
// @Tags search
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {object} models.SuccessResponse
// @Router /search [get]
func (h *InsightsHandler) Search(c *gin.Context) {
	ok(c, search.All(h.store.Snapshot(), c.Query("q")))
}

// @Summary Sales report
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router /reports/sales.xlsx [get]
func (h *InsightsHandler) SalesReport(c *gin.Context) {
	s := h.store.Snapshot()
	h.sendFile(c, "sales.xlsx", reports.XLSXContentType, func() ([]byte, error) {
		return reports.SalesWorkbook(s.Orders, s.Products)
	})
}

// @Summary Customers report
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router /reports/customers.xlsx [get]
func (h *InsightsHandler) CustomersReport(c *gin.Context) {
	customers := h.store.Customers()
	h.sendFile(c, "customers.xlsx", reports.XLSXContentType, func() ([]byte, error) {
		return reports.CustomersWorkbook(customers)
	})
}

// @Summary Inventory report
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router /reports/inventory.xlsx [get]
func (h *InsightsHandler) InventoryReport(c *gin.Context) {
	products := h.store.Products()
	h.sendFile(c, "inventory.xlsx", reports.XLSXContentType, func() ([]byte, error) {
		return reports.InventoryWorkbook(products)
	})
}

// @Summary Order invoice
// @Tags reports
// @Produce application/pdf
// @Param id path string true "Order ID"
// @Router /orders/{id}/invoice.pdf [get]
func (h *InsightsHandler) OrderInvoice(c *gin.Context) {
	order, err := h.store.Order(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	settings := h.store.StoreSettings()
	name := fmt.Sprintf("invoice-%s.pdf", order.ID)
	h.sendFile(c, name, reports.PDFContentType, func() ([]byte, error) {
		return reports.Invoice(order, settings)
	})
}

func (h *InsightsHandler) sendFile(c *gin.Context, filename, contentType string, render func() ([]byte, error)) {
	data, err := render()
	if err != nil {
		h.respondError(c, fmt.Errorf("render %s: %w", filename, err))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, data)
}
