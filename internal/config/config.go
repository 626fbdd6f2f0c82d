// Package config handles configuration loading for both services.
package config

import (
	"log"
	"os"
	"strings"
	"time"
)

// Config holds all configuration shared by the user and product services.
// TTLs and timeouts are plain fields so they can be handed to constructors
// instead of being read from the environment deep inside the code.
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisHost     string
	RedisPort     string
	RedisPassword string

	JWTSecret   string
	TokenExpiry time.Duration

	// Base URLs of the sibling services, used for response enrichment only.
	UserServiceURL    string
	ProductServiceURL string

	EntityCacheTTL    time.Duration
	ListCacheTTL      time.Duration
	CountCacheTTL     time.Duration
	EnrichmentTimeout time.Duration

	Port           string
	AllowedOrigins []string
	SwaggerHost    string
	Environment    string
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		DBHost:     GetEnvRequired("DB_HOST"),
		DBPort:     GetEnv("DB_PORT", "5432"),
		DBUser:     GetEnvRequired("DB_USER"),
		DBPassword: GetEnvRequired("DB_PASSWORD"),
		DBName:     GetEnvRequired("DB_NAME"),

		RedisHost:     GetEnvRequired("REDIS_HOST"),
		RedisPort:     GetEnv("REDIS_PORT", "6379"),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),

		JWTSecret:   GetEnvRequired("JWT_SECRET"),
		TokenExpiry: parseDuration(GetEnv("TOKEN_EXPIRY", "2h"), 2*time.Hour),

		UserServiceURL:    GetEnv("USER_SERVICE_URL", "http://localhost:5001"),
		ProductServiceURL: GetEnv("PRODUCT_SERVICE_URL", "http://localhost:5002"),

		EntityCacheTTL:    parseDuration(GetEnv("ENTITY_CACHE_TTL", "120s"), 120*time.Second),
		ListCacheTTL:      parseDuration(GetEnv("LIST_CACHE_TTL", "60s"), 60*time.Second),
		CountCacheTTL:     parseDuration(GetEnv("COUNT_CACHE_TTL", "30s"), 30*time.Second),
		EnrichmentTimeout: parseDuration(GetEnv("ENRICHMENT_TIMEOUT", "2s"), 2*time.Second),

		Port:           GetEnv("PORT", ""),
		AllowedOrigins: splitList(GetEnv("ALLOWED_ORIGINS", "*")),
		SwaggerHost:    GetEnv("SWAGGER_HOST", ""),
		Environment:    GetEnv("ENVIRONMENT", "development"),
	}
}

// GetEnv returns the value of an environment variable or a default.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvRequired returns the value of an environment variable and exits
// the process if it is not set.
func GetEnvRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Required environment variable %s is not set", key)
	}
	return value
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
