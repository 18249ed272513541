package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/cerberus-dev/cerberus/internal/shared/logger"
)

const healthTimeout = 3 * time.Second

// Pinger is one dependency checked by the health endpoint.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]Pinger
	logger logger.Interface
}

func NewHealthHandler(checks map[string]Pinger, logger logger.Interface) *HealthHandler {
	return &HealthHandler{checks: checks, logger: logger}
}

// Health handles GET /health. Every dependency is pinged concurrently; one
// failure answers 500 with the failing name.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	status := make(map[string]string, len(h.checks))
	results := make(chan [2]string, len(h.checks))
	for name, ping := range h.checks {
		g.Go(func() error {
			if err := ping(gctx); err != nil {
				h.logger.Warnw("health check failed", "dependency", name, "error", err)
				results <- [2]string{name, "down"}
				return err
			}
			results <- [2]string{name, "up"}
			return nil
		})
	}
	err := g.Wait()
	close(results)
	for r := range results {
		status[r[0]] = r[1]
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "unhealthy", "checks": status})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "checks": status})
}
