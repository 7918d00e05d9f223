package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/auth"
	"storefront-service/internal/models"
	"storefront-service/internal/store"
)

type staticVerifier map[string]models.Actor

func (v staticVerifier) Verify(token string) (models.Actor, error) {
	if a, ok := v[token]; ok {
		return a, nil
	}
	return models.Actor{}, errors.New("unknown token")
}

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func actorRouter(devMode bool) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Auth(staticVerifier{"good": {ID: "u1"}}, devMode, quietLogger()))
	r.GET("/whoami", func(c *gin.Context) {
		actor, ok := auth.ActorFromContext(c.Request.Context())
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, actor.ID)
	})
	return r
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthAttachesActor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := do(actorRouter(false), req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAuthWithoutToken(t *testing.T) {
	w := do(actorRouter(false), httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.Equal(t, "anonymous", w.Body.String())

	w = do(actorRouter(true), httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.Equal(t, auth.DevActor.ID, w.Body.String())
}

func TestAuthRejectsBadTokens(t *testing.T) {
	for _, header := range []string{"Bearer bad", "Basic abc", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", header)
		req.Header.Set("X-Request-ID", "req-1")
		w := do(actorRouter(true), req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
		assert.Contains(t, w.Body.String(), `"requestId":"req-1"`)
	}
}

func TestConfirmation(t *testing.T) {
	r := gin.New()
	r.Use(Confirmation())
	r.DELETE("/x", func(c *gin.Context) {
		ok, err := store.ContextConfirmer{}.Confirm(c.Request.Context(), store.ConfirmRequest{})
		require.NoError(t, err)
		if ok {
			c.Status(http.StatusNoContent)
			return
		}
		c.Status(http.StatusPreconditionRequired)
	})

	cases := []struct {
		name   string
		header string
		query  string
		want   int
	}{
		{"no answer", "", "", http.StatusPreconditionRequired},
		{"header", "true", "", http.StatusNoContent},
		{"query", "", "?confirm=true", http.StatusNoContent},
		{"declined", "false", "?confirm=true", http.StatusPreconditionRequired},
		{"garbage", "yes please", "", http.StatusPreconditionRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/x"+tc.query, nil)
			if tc.header != "" {
				req.Header.Set(ConfirmHeader, tc.header)
			}
			assert.Equal(t, tc.want, do(r, req).Code)
		})
	}
}

func TestConfirmationDefaultsToDeclined(t *testing.T) {
	ok, err := store.ContextConfirmer{}.Confirm(context.Background(), store.ConfirmRequest{})
	require.NoError(t, err)
	assert.False(t, ok)
}
