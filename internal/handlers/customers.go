package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/models"
	"storefront-service/internal/search"
	"storefront-service/internal/store"
)

type CustomersHandler struct {
	base
}

func NewCustomersHandler(st *store.Store, logger *logrus.Logger) *CustomersHandler {
	return &CustomersHandler{base: newBase(st, logger, "customers_handler")}
}

// @Summary List customers
// @Tags customers
// @Produce json
// @Param q query string false "Search name or email"
// @Success 200 {object} models.ListResponse
// @Router /customers [get]
func (h *CustomersHandler) ListCustomers(c *gin.Context) {
	list(c, search.Customers(h.store.Customers(), c.Query("q")))
}

// @Summary Get customer
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} models.SuccessResponse
// @Router /customers/{id} [get]
func (h *CustomersHandler) GetCustomer(c *gin.Context) {
	customer, err := h.store.Customer(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, customer)
}

// @Summary Create customer
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body models.CreateCustomerRequest true "Customer"
// @Success 201 {object} models.SuccessResponse
// @Router /customers [post]
func (h *CustomersHandler) CreateCustomer(c *gin.Context) {
	var req models.CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd := &store.CreateCustomerCommand{Input: req}
	if err := h.store.Execute(c.Request.Context(), cmd); err != nil {
		h.respondError(c, err)
		return
	}
	created(c, cmd.Created)
}

// @Summary Update customer
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param customer body models.UpdateCustomerRequest true "Fields to change"
// @Success 200 {object} models.SuccessResponse
// @Router /customers/{id} [put]
func (h *CustomersHandler) UpdateCustomer(c *gin.Context) {
	var req models.UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd := &store.UpdateCustomerCommand{ID: c.Param("id"), Patch: req}
	if err := h.store.Execute(c.Request.Context(), cmd); err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, cmd.Updated)
}

// @Summary Delete customer
// @Tags customers
// @Param id path string true "Customer ID"
// @Success 200 {object} models.SuccessResponse
// @Router /customers/{id} [delete]
func (h *CustomersHandler) DeleteCustomer(c *gin.Context) {
	if _, err := h.store.DeleteCustomer(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	deleted(c, "Customer")
}
