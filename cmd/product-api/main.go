// Package main is the entry point for the product service.
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
	if err := database.Migrate(db, &models.Product{}); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize Redis
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	cacheStore := cache.NewRedisStore(redisClient)

	// Initialize repository
	productRepo := repository.NewProductRepository(db)

	// User service client for creator name enrichment
	userClient := client.NewUserClient(cfg.UserServiceURL, cfg.EnrichmentTimeout)

	// Initialize services
	ttl := service.CacheTTLs{
		Entity: cfg.EntityCacheTTL,
		List:   cfg.ListCacheTTL,
		Count:  cfg.CountCacheTTL,
	}
	productService := service.NewProductService(productRepo, cacheStore, userClient, ttl, cfg.EnrichmentTimeout)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(productService)
	healthHandler := handlers.NewHealthHandler()

	// Setup router
	router := gin.Default()
	routes.SetupProduct(router, productHandler, healthHandler, cfg)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "5002"
	}

	log.Printf("Starting product service on port %s", port)
	if err := router.Run(fmt.Sprintf(":%s", port)); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
