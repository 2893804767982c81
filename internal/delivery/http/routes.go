package http

import (
	"github.com/gin-gonic/gin"

	"github.com/kalyan4133/Sales-project/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		analyze := v1.Group("/analyze")
		{
			analyze.POST("/text", handler.AnalyzeText)
			analyze.POST("/file", handler.AnalyzeFile)
		}

		v1.GET("/products/:name", handler.ViewProduct)
		v1.GET("/store/stats", handler.StoreStats)
	}

	return router
}
