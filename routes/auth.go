package routes

import (
	"github.com/gin-gonic/gin"
	userControllers "github.com/hamzatariq-git/shopmate-api/controllers/user"
	"github.com/hamzatariq-git/shopmate-api/middleware"
)

func SetupAuthRoutes(r *gin.Engine, deps Deps) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", userControllers.Register(deps.Users))
		auth.POST("/login", userControllers.Login(deps.Users))
	}

	user := r.Group("/user")
	user.Use(middleware.ValidateToken)
	{
		user.GET("", userControllers.GetProfile(deps.Users))
	}
}
