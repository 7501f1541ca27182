package routes

import (
	"codama/internal/handlers"

	"github.com/gin-gonic/gin"
)

type UserRoutes struct {
	userHandler   *handlers.UserHandler
	salaryHandler *handlers.SalaryHandler
	guards        Guards
}

func NewUserRoutes(userHandler *handlers.UserHandler, salaryHandler *handlers.SalaryHandler, guards Guards) *UserRoutes {
	return &UserRoutes{
		userHandler:   userHandler,
		salaryHandler: salaryHandler,
		guards:        guards,
	}
}

func (r *UserRoutes) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	users.Use(r.guards.Authenticate) // All user routes require authentication
	{
		// User's own endpoints (no special authorization needed)
		users.GET("/me", r.userHandler.GetMe)
		users.PATCH("/me", r.userHandler.UpdateMe)
		users.DELETE("/me", r.userHandler.DeleteMe)
		users.GET("/me/salaries", r.salaryHandler.ListMine)

		// Admin-only routes
		admin := r.guards.RequireAdmin
		users.GET("", admin, r.userHandler.ListUsers)
		users.POST("", admin, r.userHandler.CreateUser)
		users.GET("/:id", admin, r.userHandler.GetUser)
		users.PATCH("/:id", admin, r.userHandler.UpdateUser)
		users.DELETE("/:id", admin, r.userHandler.DeleteUser)
		users.POST("/:id/restore", admin, r.userHandler.RestoreUser)
	}
}
