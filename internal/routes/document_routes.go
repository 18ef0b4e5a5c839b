package routes

import (
	"pola_backend/internal/controllers"
	"pola_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func DocumentRoutes(r *gin.Engine) {
	documents := r.Group("/documents")
	documents.Use(middleware.RequireAuth())
	{
		documents.POST("/", controllers.UploadDocument)
		documents.GET("/", controllers.ListDocuments)
		documents.GET("/:id", controllers.GetDocument)
		documents.DELETE("/:id", controllers.DeleteDocument)
	}

	// Per-document review decisions are staff-only.
	review := r.Group("/documents")
	review.Use(middleware.RequireStaff())
	{
		review.POST("/:id/verify", controllers.VerifyDocument)
		review.POST("/:id/reject", controllers.RejectDocument)
	}
}
