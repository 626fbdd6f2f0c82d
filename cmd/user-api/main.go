// Package main is the entry point for the user service.
package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/omiete01/eCommerce-microservice/internal/cache"
	"github.com/omiete01/eCommerce-microservice/internal/client"
	"github.com/omiete01/eCommerce-microservice/internal/config"
	"github.com/omiete01/eCommerce-microservice/internal/database"
	"github.com/omiete01/eCommerce-microservice/internal/handlers"
	"github.com/omiete01/eCommerce-microservice/internal/models"
	"github.com/omiete01/eCommerce-microservice/internal/repository"
	"github.com/omiete01/eCommerce-microservice/internal/routes"
	"github.com/omiete01/eCommerce-microservice/internal/service"
	"github.com/omiete01/eCommerce-microservice/pkg/redis"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(database.PostgresConfig{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  "disable",
		TimeZone: "UTC",
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.Migrate(db, &models.User{}); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize Redis
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	cacheStore := cache.NewRedisStore(redisClient)

	// Initialize repository
	userRepo := repository.NewUserRepository(db)

	// Product service client for product count enrichment
	productClient := client.NewProductClient(cfg.ProductServiceURL, cfg.EnrichmentTimeout)

	// Initialize services
	ttl := service.CacheTTLs{
		Entity: cfg.EntityCacheTTL,
		List:   cfg.ListCacheTTL,
		Count:  cfg.CountCacheTTL,
	}
	jwtService := service.NewJWTService(cfg.JWTSecret, cfg.TokenExpiry)
	userService := service.NewUserService(userRepo, cacheStore, productClient, ttl, cfg.EnrichmentTimeout)
	authService := service.NewAuthService(userRepo, jwtService, cacheStore)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler()

	// Setup router
	router := gin.Default()
	routes.SetupUser(router, userHandler, authHandler, healthHandler, jwtService, cfg)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "5001"
	}

	log.Printf("Starting user service on port %s", port)
	if err := router.Run(fmt.Sprintf(":%s", port)); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
