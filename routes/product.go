package routes

import (
	"github.com/gin-gonic/gin"
	productControllers "github.com/hamzatariq-git/shopmate-api/controllers/product"
	"github.com/hamzatariq-git/shopmate-api/middleware"
	"github.com/hamzatariq-git/shopmate-api/models"
)

func SetupProductRoutes(r *gin.Engine, deps Deps) {
	products := r.Group("/products")
	{
		products.GET("", productControllers.GetProducts(deps.Products))
		products.GET("/:id", productControllers.GetProductByID(deps.Products))

		// Admin create with image upload
		products.POST("",
			middleware.ValidateToken,
			middleware.RequireRole(models.RoleAdmin),
			middleware.UploadSingleFile("image", "products"),
			productControllers.CreateProduct(deps.Products),
		)
	}
}
