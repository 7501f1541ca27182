package routes

import (
	"codama/internal/handlers"
	"codama/internal/models"
	"codama/internal/services"

	"github.com/gin-gonic/gin"
)

// Handlers bundles every HTTP handler the API exposes.
type Handlers struct {
	Auth        *handlers.AuthHandler
	GoogleAuth  *handlers.GoogleAuthHandler
	User        *handlers.UserHandler
	Category    *handlers.ResourceHandler[models.Category, services.CategoryRequest]
	Color       *handlers.ResourceHandler[models.Color, services.ColorRequest]
	Gallery     *handlers.UploadHandler[models.Gallery, services.GalleryRequest]
	Design      *handlers.UploadHandler[models.Design, services.DesignRequest]
	Transaction *handlers.TransactionHandler
	Outcome     *handlers.ResourceHandler[models.Outcome, services.OutcomeRequest]
	Salary      *handlers.SalaryHandler
	Dashboard   *handlers.DashboardHandler
	Download    *handlers.DownloadHandler
	Health      *handlers.HealthHandler
}

// Guards are the authentication and authorization middlewares.
type Guards struct {
	Authenticate gin.HandlerFunc
	RequireAdmin gin.HandlerFunc
}

func RegisterRoutes(router *gin.Engine, h Handlers, g Guards) {
	router.GET("/", h.Health.Welcome)
	router.GET("/health", h.Health.Health)
	router.GET("/storage/*path", g.Authenticate, h.Download.Storage)

	api := router.Group("/api/v1")

	NewAuthRoutes(h.Auth, h.GoogleAuth, g).RegisterRoutes(api)
	NewUserRoutes(h.User, h.Salary, g).RegisterRoutes(api)
	NewCatalogRoutes(h.Category, h.Color, h.Gallery, g).RegisterRoutes(api)
	NewDesignRoutes(h.Design, h.Download, g).RegisterRoutes(api)
	NewFinanceRoutes(h.Transaction, h.Outcome, h.Salary, h.Dashboard, g).RegisterRoutes(api)
}

// resource is the handler set behind a list/view/edit resource.
type resource interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	Restore(c *gin.Context)
	ForceDelete(c *gin.Context)
}

// registerResource mounts the standard endpoints of a resource. Restore and
// force delete are always admin only; write guards apply to create, update
// and delete.
func registerResource(group *gin.RouterGroup, r resource, admin gin.HandlerFunc, writeGuards ...gin.HandlerFunc) {
	write := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, writeGuards...), handler)
	}

	group.GET("", r.List)
	group.GET("/:id", r.Get)
	group.POST("", write(r.Create)...)
	group.PATCH("/:id", write(r.Update)...)
	group.DELETE("/:id", write(r.Delete)...)
	group.POST("/:id/restore", admin, r.Restore)
	group.DELETE("/:id/force", admin, r.ForceDelete)
}
