package handlers

import (
	"context"
	"net/http"

	"codama/internal/models"
	"codama/internal/responses"
	"codama/internal/services"

	"github.com/gin-gonic/gin"
)

type SalaryManager interface {
	ResourceService[models.Salary, services.SalaryRequest]
	ListMine(ctx context.Context, actor services.Actor, q models.ListQuery) (*models.Page[models.Salary], error)
}

type SalaryHandler struct {
	*ResourceHandler[models.Salary, services.SalaryRequest]
	salaries SalaryManager
}

func NewSalaryHandler(salaries SalaryManager) *SalaryHandler {
	return &SalaryHandler{
		ResourceHandler: NewResourceHandler[models.Salary, services.SalaryRequest](salaries, "Salary"),
		salaries:        salaries,
	}
}

// ListMine handles GET /api/v1/users/me/salaries
func (h *SalaryHandler) ListMine(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	page, err := h.salaries.ListMine(c.Request.Context(), actor, listQuery(c))
	if err != nil {
		fail(c, err, "Failed to retrieve salaries")
		return
	}

	responses.Success(c, http.StatusOK, page, "Salaries retrieved successfully")
}
