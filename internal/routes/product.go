package routes

import (
	"github.com/gin-gonic/gin"
	productdocs "github.com/omiete01/eCommerce-microservice/docs/productapi"
	"github.com/omiete01/eCommerce-microservice/internal/config"
	"github.com/omiete01/eCommerce-microservice/internal/handlers"
	"github.com/omiete01/eCommerce-microservice/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupProduct configures all HTTP routes for the product service.
func SetupProduct(
	router *gin.Engine,
	productHandler *handlers.ProductHandler,
	healthHandler *handlers.HealthHandler,
	cfg *config.Config,
) {
	router.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: cfg.AllowedOrigins,
	}))

	// Health check
	router.GET("/health", healthHandler.Check)
	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/product/:id", productHandler.GetByID)
	router.GET("/products", productHandler.List)
	router.GET("/products/count", productHandler.Count)
	router.POST("/products", productHandler.Create)
	router.PUT("/products/:id", productHandler.Update)
	router.DELETE("/products/:id", productHandler.Delete)

	// Swagger documentation (only if SWAGGER_HOST is configured)
	if cfg.SwaggerHost != "" {
		productdocs.SwaggerInfo.Host = cfg.SwaggerHost
		router.GET("/swagger/*any", ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.InstanceName(productdocs.SwaggerInfo.InstanceName()),
		))
	}
}
