package routes

import (
	"pola_backend/internal/controllers"
	"pola_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", controllers.SignupUser)
		auth.POST("/login", controllers.LoginUser)
		auth.GET("/me", middleware.RequireAuth(), controllers.GetMe)
	}
}
