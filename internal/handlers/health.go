package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

// Pinger is a dependency whose reachability gates readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecks carries the readiness probes for external dependencies.
type HealthChecks struct {
	Database Pinger
	Cache    Pinger
}

// Health handles GET /health
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "cart-service",
	})
}

// Ready handles GET /ready
func (h *Handlers) Ready(checks HealthChecks) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		deps := gin.H{}
		ready := true

		if checks.Database != nil {
			if err := checks.Database.Ping(ctx); err != nil {
				deps["database"] = "unreachable"
				ready = false
			} else {
				deps["database"] = "ok"
			}
		}
		if checks.Cache != nil {
			if err := checks.Cache.Ping(ctx); err != nil {
				// The cart degrades gracefully without Redis; note it but
				// stay ready.
				deps["cache"] = "unreachable"
			} else {
				deps["cache"] = "ok"
			}
		}

		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"status":       map[bool]string{true: "ready", false: "not ready"}[ready],
			"service":      "cart-service",
			"dependencies": deps,
		})
	}
}

// Live handles GET /live
func (h *Handlers) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Version handles GET /version
func (h *Handlers) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":    "1.0.0",
		"service":    "cart-service",
		"go_version": runtime.Version(),
		"started_at": startTime.Format(time.RFC3339),
	})
}
