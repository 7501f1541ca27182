package handlers

import (
	"context"
	"net/http"
	"time"

	"codama/internal/responses"

	"github.com/gin-gonic/gin"
)

// Pinger is a backing service the health check reaches.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	checks map[string]Pinger
}

func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Welcome handles GET /
func (h *HealthHandler) Welcome(c *gin.Context) {
	responses.Success(c, http.StatusOK, gin.H{"name": "codama", "version": "v1"}, "Welcome to the Codama API")
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	report := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			report[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		report[name] = "ok"
	}

	if status != http.StatusOK {
		responses.JSON(c, status, "error", report, "Service unavailable", nil)
		return
	}
	responses.Success(c, status, report, "Service healthy")
}
