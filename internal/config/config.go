package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends
const (
	StorageYandex = "yandex"
	StorageMinIO  = "minio"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port         string
	MaxBodyBytes int

	// Database configuration
	DatabaseURL       string // full DSN, takes precedence over the discrete fields
	DBType            string // postgres, mysql, sqlite, sqlserver
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int
	DBAutoMigrate     bool

	// Token verification
	JWTSecret string

	// File storage
	StorageBackend  string
	StorageTimeout  time.Duration
	YandexDiskToken string
	YandexDiskURL   string
	YandexFolder    string
	MinIOEndpoint   string
	MinIOAccessKey  string
	MinIOSecretKey  string
	MinIOBucket     string
	MinIOPublicURL  string

	// Health check
	HealthcheckTimeout time.Duration

	// Behavior switches
	DashboardVerifyToken bool
	DashboardAggregate   bool
	ExposeErrorDetails   bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                 getEnv("PORT", "3000"),
		MaxBodyBytes:         getEnvAsInt("MAX_BODY_BYTES", 25*1024*1024),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		DBType:               strings.ToLower(getEnv("DB_TYPE", "postgres")),
		DBHost:               getEnv("DB_HOST", "localhost"),
		DBPort:               getEnv("DB_PORT", "5432"),
		DBDatabase:           getEnv("DB_DATABASE", ""),
		DBUser:               getEnv("DB_USER", ""),
		DBPassword:           getEnv("DB_PASSWORD", ""),
		DBConnectionLimit:    getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		DBAutoMigrate:        getEnvAsBool("DB_AUTO_MIGRATE", true),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		StorageBackend:       strings.ToLower(getEnv("STORAGE_BACKEND", StorageYandex)),
		StorageTimeout:       getEnvAsDuration("STORAGE_TIMEOUT", 60*time.Second),
		YandexDiskToken:      getEnv("YANDEX_DISK_TOKEN", ""),
		YandexDiskURL:        getEnv("YANDEX_DISK_URL", "https://cloud-api.yandex.net"),
		YandexFolder:         getEnv("YANDEX_DISK_FOLDER", "/metalworking-orders"),
		MinIOEndpoint:        getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:       getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:       getEnv("MINIO_SECRET_KEY", ""),
		MinIOBucket:          getEnv("MINIO_BUCKET", "order-files"),
		MinIOPublicURL:       getEnv("MINIO_PUBLIC_URL", ""),
		HealthcheckTimeout:   getEnvAsDuration("HEALTHCHECK_TIMEOUT", 1500*time.Millisecond),
		DashboardVerifyToken: getEnvAsBool("DASHBOARD_VERIFY_TOKEN", false),
		DashboardAggregate:   getEnvAsBool("DASHBOARD_AGGREGATE", false),
		ExposeErrorDetails:   getEnvAsBool("EXPOSE_ERROR_DETAILS", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.JWTSecret == "" {
		log.Printf("JWT_SECRET is not set, authenticated file requests will be rejected")
	}

	return cfg, nil
}

// Validate checks required fields
func (c *Config) Validate() error {
	if c.DatabaseURL == "" && c.DBDatabase == "" {
		return fmt.Errorf("DATABASE_URL or DB_DATABASE is required")
	}

	switch c.DBType {
	case "postgres", "postgresql", "mysql", "mariadb", "sqlite", "sqlserver", "mssql":
	default:
		return fmt.Errorf("unsupported DB_TYPE: %s", c.DBType)
	}

	switch c.StorageBackend {
	case StorageYandex:
	case StorageMinIO:
		if c.MinIOEndpoint == "" || c.MinIOAccessKey == "" || c.MinIOSecretKey == "" {
			return fmt.Errorf("MINIO_ENDPOINT, MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required for the minio backend")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND: %s", c.StorageBackend)
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts Go duration strings ("90s") or a bare number of seconds
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
