package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds application configuration
type Config struct {
	// Database
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Server
	Port           string
	Environment    string
	AllowedOrigins []string

	// Auth
	JWTSecret     string
	TokenTTLHours int

	// Cache / events (optional, degrade gracefully when unset)
	RedisURL string
	NATSURL  string

	// Object storage for product images
	GCSBucket string

	// Catalog
	LowStockThreshold int

	// Pagination
	DefaultPageSize int
	MaxPageSize     int
}

// Load reads configuration from environment variables
func Load() *Config {
	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	tokenTTL, _ := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "72"))
	lowStock, _ := strconv.Atoi(getEnv("LOW_STOCK_THRESHOLD", "5"))
	defaultPageSize, _ := strconv.Atoi(getEnv("DEFAULT_PAGE_SIZE", "20"))
	maxPageSize, _ := strconv.Atoi(getEnv("MAX_PAGE_SIZE", "100"))

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     dbPort,
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "sareehouse"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:4200"), ","),

		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTLHours: tokenTTL,

		RedisURL: os.Getenv("REDIS_URL"),
		NATSURL:  os.Getenv("NATS_URL"),

		GCSBucket: os.Getenv("GCS_BUCKET"),

		LowStockThreshold: lowStock,

		DefaultPageSize: defaultPageSize,
		MaxPageSize:     maxPageSize,
	}
}

// InitDB opens the PostgreSQL connection via GORM
func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)

	var logLevel logger.LogLevel
	if cfg.Environment == "production" {
		logLevel = logger.Error
	} else {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// InitRedis connects to Redis when REDIS_URL is set. Returns nil (caching
// and token revocation disabled) when unset or unreachable.
func InitRedis(cfg *Config) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}

	return client
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
