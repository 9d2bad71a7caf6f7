package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	// Health check
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Certificate routes
		v1.POST("/certificates/:owner_id", handler.UploadCertificates)
		v1.GET("/certificates/:owner_id", handler.ListCertificates)
		v1.DELETE("/certificates/:certificate_id", handler.DeleteCertificate)
		v1.GET("/orphans", handler.ListOrphans)

		// Activity routes
		v1.GET("/activity/:owner_id", handler.GetActivitySummary)

		// Import routes
		v1.POST("/imports/:target", handler.StartImport)
		v1.GET("/imports/:file_id", handler.GetImportStatus)
	}
}
