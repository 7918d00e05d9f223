package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/auth"
	"storefront-service/internal/models"
)

// TokenVerifier turns a bearer token into an actor
type TokenVerifier interface {
	Verify(token string) (models.Actor, error)
}

// Auth attaches the bearer token's actor to the request context. Requests without a
// token continue anonymously, or as auth.DevActor when devMode is set; the store decides
// which operations need an actor. Invalid tokens are rejected with 401.
func Auth(verifier TokenVerifier, devMode bool, logger *logrus.Logger) gin.HandlerFunc {
	entry := logger.WithField("component", "auth_middleware")
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			if devMode {
				setActor(c, auth.DevActor)
			}
			c.Next()
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			abortUnauthorized(c, "Invalid authorization format")
			return
		}
		actor, err := verifier.Verify(token)
		if err != nil {
			entry.WithError(err).WithField("request_id", c.GetString("request_id")).Debug("Rejected bearer token")
			abortUnauthorized(c, "Invalid or expired token")
			return
		}
		setActor(c, actor)
		c.Next()
	}
}

func setActor(c *gin.Context, actor models.Actor) {
	c.Set("actor_id", actor.ID)
	c.Request = c.Request.WithContext(auth.WithActor(c.Request.Context(), actor))
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
		Success:   false,
		Error:     models.Error{Code: "UNAUTHORIZED", Message: message},
		RequestID: c.GetString("request_id"),
	})
}
