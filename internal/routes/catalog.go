package routes

import (
	"codama/internal/handlers"
	"codama/internal/models"
	"codama/internal/services"

	"github.com/gin-gonic/gin"
)

// CatalogRoutes mounts categories, colors and galleries. Any authenticated
// user reads them; only admins write.
type CatalogRoutes struct {
	categories *handlers.ResourceHandler[models.Category, services.CategoryRequest]
	colors     *handlers.ResourceHandler[models.Color, services.ColorRequest]
	galleries  *handlers.UploadHandler[models.Gallery, services.GalleryRequest]
	guards     Guards
}

func NewCatalogRoutes(
	categories *handlers.ResourceHandler[models.Category, services.CategoryRequest],
	colors *handlers.ResourceHandler[models.Color, services.ColorRequest],
	galleries *handlers.UploadHandler[models.Gallery, services.GalleryRequest],
	guards Guards,
) *CatalogRoutes {
	return &CatalogRoutes{
		categories: categories,
		colors:     colors,
		galleries:  galleries,
		guards:     guards,
	}
}

func (r *CatalogRoutes) RegisterRoutes(router *gin.RouterGroup) {
	admin := r.guards.RequireAdmin

	categories := router.Group("/categories", r.guards.Authenticate)
	registerResource(categories, r.categories, admin, admin)

	colors := router.Group("/colors", r.guards.Authenticate)
	registerResource(colors, r.colors, admin, admin)

	galleries := router.Group("/galleries", r.guards.Authenticate)
	registerResource(galleries, r.galleries, admin, admin)
}
