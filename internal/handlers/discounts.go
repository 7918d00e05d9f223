package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/models"
	"storefront-service/internal/search"
	"storefront-service/internal/store"
)

type DiscountsHandler struct {
	base
}

func NewDiscountsHandler(st *store.Store, logger *logrus.Logger) *DiscountsHandler {
	return &DiscountsHandler{base: newBase(st, logger, "discounts_handler")}
}

// @Summary List discounts
// @Tags discounts
// @Produce json
// @Param q query string false "Search code or title"
// @Success 200 {object} models.ListResponse
// @Router /discounts [get]
func (h *DiscountsHandler) ListDiscounts(c *gin.Context) {
	list(c, search.Discounts(h.store.Discounts(), c.Query("q")))
}

// @Summary Get discount
// @Tags discounts
// @Produce json
// @Param id path string true "Discount ID"
// @Success 200 {object} models.SuccessResponse
// @Router /discounts/{id} [get]
func (h *DiscountsHandler) GetDiscount(c *gin.Context) {
	discount, err := h.store.Discount(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, discount)
}

// @Summary Create discount
// @Tags discounts
// @Accept json
// @Produce json
// @Param discount body models.CreateDiscountRequest true "Discount"
// @Success 201 {object} models.SuccessResponse
// @Router /discounts [post]
func (h *DiscountsHandler) CreateDiscount(c *gin.Context) {
	var req models.CreateDiscountRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd := &store.CreateDiscountCommand{Input: req}
	if err := h.store.Execute(c.Request.Context(), cmd); err != nil {
		h.respondError(c, err)
		return
	}
	created(c, cmd.Created)
}

// @Summary Update discount
// @Tags discounts
// @Accept json
// @Produce json
// @Param id path string true "Discount ID"
// @Param discount body models.UpdateDiscountRequest true "Fields to change"
// @Success 200 {object} models.SuccessResponse
// @Router /discounts/{id} [put]
func (h *DiscountsHandler) UpdateDiscount(c *gin.Context) {
	var req models.UpdateDiscountRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd := &store.UpdateDiscountCommand{ID: c.Param("id"), Patch: req}
	if err := h.store.Execute(c.Request.Context(), cmd); err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, cmd.Updated)
}

// @Summary Delete discount
// @Tags discounts
// @Param id path string true "Discount ID"
// @Success 200 {object} models.SuccessResponse
// @Router /discounts/{id} [delete]
func (h *DiscountsHandler) DeleteDiscount(c *gin.Context) {
	if _, err := h.store.DeleteDiscount(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	deleted(c, "Discount")
}

// RedeemDiscount records one use of a code
// @Summary Redeem discount code
// @Tags discounts
// @Accept json
// @Produce json
// @Param redemption body models.RedeemDiscountRequest true "Code"
// @Success 200 {object} models.SuccessResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /discounts/redeem [post]
func (h *DiscountsHandler) RedeemDiscount(c *gin.Context) {
	var req models.RedeemDiscountRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Code == "" {
		h.respondError(c, &store.ValidationError{Field: "code", Message: "code is required"})
		return
	}
	cmd := &store.RedeemDiscountCommand{Code: req.Code, CustomerID: req.CustomerID}
	if err := h.store.Execute(c.Request.Context(), cmd); err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, cmd.Redeemed)
}
