package handlers

import (
	"context"
	"net/http"

	"codama/internal/models"
	"codama/internal/responses"
	"codama/internal/services"

	"github.com/gin-gonic/gin"
)

type StatsProvider interface {
	Stats(ctx context.Context, actor services.Actor) (*models.DashboardStats, error)
}

type DashboardHandler struct {
	dashboard StatsProvider
}

func NewDashboardHandler(dashboard StatsProvider) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Stats handles GET /api/v1/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	stats, err := h.dashboard.Stats(c.Request.Context(), actor)
	if err != nil {
		fail(c, err, "Failed to compute dashboard stats")
		return
	}

	responses.Success(c, http.StatusOK, stats, "Dashboard stats retrieved successfully")
}
