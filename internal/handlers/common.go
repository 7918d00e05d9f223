package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/models"
	"storefront-service/internal/persistence"
	"storefront-service/internal/store"
)

// base holds what every handler family needs
type base struct {
	store  *store.Store
	logger *logrus.Entry
}

func newBase(st *store.Store, logger *logrus.Logger, component string) base {
	return base{store: st, logger: logger.WithField("component", component)}
}

// bindJSON decodes the body; on failure it writes a 400 and returns false
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success:   false,
			Error:     models.Error{Code: "INVALID_REQUEST", Message: err.Error()},
			RequestID: c.GetString("request_id"),
		})
		return false
	}
	return true
}

// respondError maps store and persistence errors onto HTTP statuses
func (b base) respondError(c *gin.Context, err error) {
	var (
		validation *store.ValidationError
		notFound   *store.NotFoundError
		rejected   *store.DiscountRejectedError
		persist    *persistence.PersistenceError
	)
	status := http.StatusInternalServerError
	body := models.Error{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}

	switch {
	case errors.As(err, &validation):
		status = http.StatusBadRequest
		body = models.Error{Code: "VALIDATION_ERROR", Message: validation.Message, Field: validation.Field}
	case errors.As(err, &notFound):
		status = http.StatusNotFound
		body = models.Error{Code: "NOT_FOUND", Message: fmt.Sprintf("%s not found", notFound.Entity)}
	case errors.Is(err, store.ErrNotConfirmed):
		status = http.StatusPreconditionRequired
		body = models.Error{Code: "CONFIRMATION_REQUIRED", Message: "Repeat the request with X-Confirm-Delete: true to delete"}
	case errors.Is(err, store.ErrUnauthenticated):
		status = http.StatusUnauthorized
		body = models.Error{Code: "UNAUTHORIZED", Message: err.Error()}
	case errors.As(err, &rejected):
		status = http.StatusUnprocessableEntity
		body = models.Error{
			Code:    "DISCOUNT_REJECTED",
			Message: err.Error(),
			Field:   "discountCode",
			Details: map[string]interface{}{"code": rejected.Code, "reason": rejected.Reason},
		}
	case errors.As(err, &persist):
		status = http.StatusServiceUnavailable
		body = models.Error{Code: "PERSISTENCE_ERROR", Message: "Storage is unavailable"}
	}

	if status >= http.StatusInternalServerError {
		b.logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("Request failed")
	}
	c.JSON(status, models.ErrorResponse{Success: false, Error: body, RequestID: c.GetString("request_id")})
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: data})
}

func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: data})
}

func deleted(c *gin.Context, entity string) {
	msg := entity + " deleted"
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: &msg})
}

func list[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, models.ListResponse{Success: true, Data: items, Total: len(items)})
}

// keep returns the items matching pred, preserving order
func keep[T any](items []T, pred func(T) bool) []T {
	out := items[:0:0]
	for _, it := range items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}
