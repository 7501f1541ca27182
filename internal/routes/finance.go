package routes

import (
	"codama/internal/handlers"
	"codama/internal/models"
	"codama/internal/services"

	"github.com/gin-gonic/gin"
)

// FinanceRoutes mounts transactions, outcomes, salaries and the dashboard.
type FinanceRoutes struct {
	transactions *handlers.TransactionHandler
	outcomes     *handlers.ResourceHandler[models.Outcome, services.OutcomeRequest]
	salaries     *handlers.SalaryHandler
	dashboard    *handlers.DashboardHandler
	guards       Guards
}

func NewFinanceRoutes(
	transactions *handlers.TransactionHandler,
	outcomes *handlers.ResourceHandler[models.Outcome, services.OutcomeRequest],
	salaries *handlers.SalaryHandler,
	dashboard *handlers.DashboardHandler,
	guards Guards,
) *FinanceRoutes {
	return &FinanceRoutes{
		transactions: transactions,
		outcomes:     outcomes,
		salaries:     salaries,
		dashboard:    dashboard,
		guards:       guards,
	}
}

func (r *FinanceRoutes) RegisterRoutes(router *gin.RouterGroup) {
	admin := r.guards.RequireAdmin

	transactions := router.Group("/transactions", r.guards.Authenticate)
	{
		transactions.GET("/export", admin, r.transactions.Export)
		registerResource(transactions, r.transactions, admin)
		transactions.POST("/:id/proof", r.transactions.AttachProof)
	}

	// Outcomes and salaries are admin only as a whole.
	outcomes := router.Group("/outcomes", r.guards.Authenticate, admin)
	registerResource(outcomes, r.outcomes, admin)

	salaries := router.Group("/salaries", r.guards.Authenticate, admin)
	registerResource(salaries, r.salaries, admin)

	router.GET("/dashboard/stats", r.guards.Authenticate, admin, r.dashboard.Stats)
}
