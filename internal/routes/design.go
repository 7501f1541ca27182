package routes

import (
	"codama/internal/handlers"
	"codama/internal/models"
	"codama/internal/services"

	"github.com/gin-gonic/gin"
)

type DesignRoutes struct {
	handler         *handlers.UploadHandler[models.Design, services.DesignRequest]
	downloadHandler *handlers.DownloadHandler
	guards          Guards
}

func NewDesignRoutes(handler *handlers.UploadHandler[models.Design, services.DesignRequest], downloadHandler *handlers.DownloadHandler, guards Guards) *DesignRoutes {
	return &DesignRoutes{handler: handler, downloadHandler: downloadHandler, guards: guards}
}

func (r *DesignRoutes) RegisterRoutes(router *gin.RouterGroup) {
	designs := router.Group("/designs")
	designs.Use(r.guards.Authenticate)
	{
		// Owners manage their own designs; the service checks ownership.
		registerResource(designs, r.handler, r.guards.RequireAdmin)
		designs.GET("/:id/download", r.downloadHandler.Design)
	}
}
