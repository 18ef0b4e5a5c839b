package routes

import (
	"pola_backend/internal/controllers"
	"pola_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func VerificationRoutes(r *gin.Engine) {
	verifications := r.Group("/verifications")
	verifications.Use(middleware.RequireAuth())
	{
		verifications.GET("/my_status", controllers.MyVerificationStatus)
	}

	admin := r.Group("/verifications")
	admin.Use(middleware.RequireStaff())
	{
		admin.GET("/pending", controllers.ListPendingVerifications)
		admin.GET("/by_role", controllers.ListVerificationsByRole)
		admin.GET("/all", controllers.ListAllVerifications)
		admin.POST("/:id/approve", controllers.ApproveVerification)
		admin.POST("/:id/reject", controllers.RejectVerification)
		admin.POST("/:id/verify_step", controllers.VerifyVerificationStep)
		admin.POST("/:id/reject_step", controllers.RejectVerificationStep)
		admin.POST("/:id/request_documents", controllers.RequestDocuments)
	}
}
