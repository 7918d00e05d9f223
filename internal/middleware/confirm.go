package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront-service/internal/store"
)

// ConfirmHeader carries the caller's answer to a delete confirmation
const ConfirmHeader = "X-Confirm-Delete"

// Confirmation records X-Confirm-Delete or ?confirm= on the request context so the
// store's ContextConfirmer can approve deletes.
func Confirmation() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(ConfirmHeader)
		if raw == "" {
			raw = c.Query("confirm")
		}
		if confirmed, err := strconv.ParseBool(raw); err == nil && confirmed {
			c.Request = c.Request.WithContext(store.WithConfirmation(c.Request.Context(), true))
		}
		c.Next()
	}
}
