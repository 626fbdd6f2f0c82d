// Package routes defines the HTTP routes for both services.
package routes

import (
	"github.com/gin-gonic/gin"
	userdocs "github.com/omiete01/eCommerce-microservice/docs/userapi"
	"github.com/omiete01/eCommerce-microservice/internal/config"
	"github.com/omiete01/eCommerce-microservice/internal/handlers"
	"github.com/omiete01/eCommerce-microservice/internal/middleware"
	"github.com/omiete01/eCommerce-microservice/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupUser configures all HTTP routes for the user service.
func SetupUser(
	router *gin.Engine,
	userHandler *handlers.UserHandler,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	jwtService service.JWTService,
	cfg *config.Config,
) {
	router.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: cfg.AllowedOrigins,
	}))

	// Health check
	router.GET("/health", healthHandler.Check)
	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/user/:id", userHandler.GetByID)
	router.GET("/users", userHandler.List)

	// Writes require a valid bearer token
	auth := middleware.RequireAuth(jwtService)
	router.PUT("/users/:id", auth, userHandler.Update)
	router.DELETE("/users/:id", auth, userHandler.Delete)

	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)

	// Swagger documentation (only if SWAGGER_HOST is configured)
	if cfg.SwaggerHost != "" {
		userdocs.SwaggerInfo.Host = cfg.SwaggerHost
		router.GET("/swagger/*any", ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.InstanceName(userdocs.SwaggerInfo.InstanceName()),
		))
	}
}
