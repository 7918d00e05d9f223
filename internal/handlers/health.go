package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-service/internal/persistence"
)

// ReadinessCheck reports whether a dependency can serve traffic
type ReadinessCheck func(ctx context.Context) error

type HealthHandler struct {
	syncer *persistence.Syncer
	checks map[string]ReadinessCheck
}

// NewHealthHandler creates health endpoints. syncer may be nil.
func NewHealthHandler(syncer *persistence.Syncer, checks map[string]ReadinessCheck) *HealthHandler {
	return &HealthHandler{syncer: syncer, checks: checks}
}

// Health is the liveness probe
func (h *HealthHandler) Health(c *gin.Context) {
	body := gin.H{"status": "healthy", "service": "storefront-service", "timestamp": time.Now().UTC()}
	if h.syncer != nil {
		body["persistence"] = h.syncer.Stats()
	}
	c.JSON(http.StatusOK, body)
}

// Ready runs every readiness check
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	failures := gin.H{}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			failures[name] = err.Error()
		}
	}
	if len(failures) > 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "checks": failures})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
