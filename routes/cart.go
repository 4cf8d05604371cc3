package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/hamzatariq-git/shopmate-api/controllers/cart"
	"github.com/hamzatariq-git/shopmate-api/middleware"
)

func SetupCartRoutes(r *gin.Engine, deps Deps) {
	cart := r.Group("/cart")
	cart.Use(middleware.ValidateToken)
	{
		cart.GET("", cartControllers.GetUserCart(deps.Carts))
		cart.POST("", cartControllers.UpdateCartItem(deps.Carts))
		cart.POST("/apply-coupon", cartControllers.ApplyCoupon(deps.Carts))
		cart.DELETE("/:product_id", cartControllers.DeleteCartItem(deps.Carts))
		cart.DELETE("", cartControllers.ClearUserCart(deps.Carts))
	}
}
