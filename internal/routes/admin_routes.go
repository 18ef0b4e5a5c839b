package routes

import (
	"pola_backend/internal/controllers"
	"pola_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin-verification")
	admin.Use(middleware.RequireStaff())
	{
		admin.GET("/statistics", controllers.VerificationStatistics)
		admin.GET("/pending_documents", controllers.PendingDocuments)
		admin.GET("/users_needing_review", controllers.UsersNeedingReview)
	}
}
