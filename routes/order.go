package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/hamzatariq-git/shopmate-api/controllers/order"
	"github.com/hamzatariq-git/shopmate-api/middleware"
	"github.com/hamzatariq-git/shopmate-api/models"
)

func SetupOrderRoutes(r *gin.Engine, deps Deps) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken)
	{
		// Admin: every order, export, live feed
		orders.GET("/all", middleware.RequireRole(models.RoleAdmin), orderControllers.GetAllOrdersHandler(deps.Orders))
		orders.GET("/export", middleware.RequireRole(models.RoleAdmin), orderControllers.ExportOrdersToExcel(deps.Orders))
		orders.GET("/ws", middleware.RequireRole(models.RoleAdmin), orderControllers.OrderWebSocketHandler)

		// Hosted checkout session for a cart
		orders.POST("/checkout/:id", middleware.RequireRole(models.RoleUser), orderControllers.CreateCheckoutSessionHandler(deps.Orders, deps.Users))

		// Cash order create / fetch own latest order
		orders.POST("/:id", middleware.RequireRole(models.RoleUser), orderControllers.CreateCashOrderHandler(deps.Orders))
		orders.GET("/:id", middleware.RequireRole(models.RoleUser), orderControllers.GetSpecificOrderHandler(deps.Orders))
	}
}
