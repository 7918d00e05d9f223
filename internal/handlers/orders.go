package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/models"
	"storefront-service/internal/search"
	"storefront-service/internal/store"
)

type OrdersHandler struct {
	base
}

func NewOrdersHandler(st *store.Store, logger *logrus.Logger) *OrdersHandler {
	return &OrdersHandler{base: newBase(st, logger, "orders_handler")}
}

// ListOrders lists orders
// @Summary List orders
// @Tags orders
// @Produce json
// @Param q query string false "Search order number, customer name or email"
// @Param status query string false "Order status"
// @Success 200 {object} models.ListResponse
// @Router /orders [get]
func (h *OrdersHandler) ListOrders(c *gin.Context) {
	orders := search.Orders(h.store.Orders(), c.Query("q"))
	if status := c.Query("status"); status != "" {
		orders = keep(orders, func(o models.Order) bool { return string(o.Status) == status })
	}
	list(c, orders)
}

// GetOrder returns one order
// @Summary Get order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{id} [get]
func (h *OrdersHandler) GetOrder(c *gin.Context) {
	order, err := h.store.Order(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, order)
}

// CreateOrder places an order. Totals are computed from the catalog and settings;
// a discount code is redeemed in the same batch.
// @Summary Create order
// @Tags orders
// @Accept json
// @Produce json
// @Param order body models.CreateOrderRequest true "Order"
// @Success 201 {object} models.SuccessResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /orders [post]
func (h *OrdersHandler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd := &store.CreateOrderCommand{Input: req}
	if err := h.store.Execute(c.Request.Context(), cmd); err != nil {
		h.respondError(c, err)
		return
	}
	h.logger.WithFields(logrus.Fields{"order_id": cmd.Created.ID, "order_number": cmd.Created.OrderNumber}).Info("Order created")
	created(c, cmd.Created)
}

// UpdateOrder changes status, payment, fulfillment or notes
// @Summary Update order
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param order body models.UpdateOrderRequest true "Fields to change"
// @Success 200 {object} models.SuccessResponse
// @Router /orders/{id} [put]
func (h *OrdersHandler) UpdateOrder(c *gin.Context) {
	var req models.UpdateOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd := &store.UpdateOrderCommand{ID: c.Param("id"), Patch: req}
	if err := h.store.Execute(c.Request.Context(), cmd); err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, cmd.Updated)
}

// DeleteOrder deletes an order
// @Summary Delete order
// @Tags orders
// @Param id path string true "Order ID"
// @Success 200 {object} models.SuccessResponse
// @Router /orders/{id} [delete]
func (h *OrdersHandler) DeleteOrder(c *gin.Context) {
	if _, err := h.store.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	deleted(c, "Order")
}
