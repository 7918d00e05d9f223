package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront-service/internal/persistence"
)

// Storage backends
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	// Server
	Port        string
	Environment string
	CORSOrigins []string

	// Storefront
	Namespace      string
	StorageBackend string
	SeedProfile    string
	SyncWindow     time.Duration
	SyncMaxRetries int

	// Database
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis
	RedisURL string

	// Messaging
	NATSURL string

	// JWT
	JWTSecret string

	// Services
	PageRegistryURL string
	MediaServiceURL string
	ServiceToken    string
	RequestsPerSec  float64

	// GCP Secret Manager
	GCPProjectID         string
	UseSecretManager     bool
	DBPasswordSecretName string
	JWTSecretName        string
}

func Load() *Config {
	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	syncWindowMs, _ := strconv.Atoi(getEnv("SYNC_WINDOW_MS", "50"))
	syncRetries, err := strconv.Atoi(getEnv("SYNC_MAX_RETRIES", strconv.Itoa(persistence.DefaultMaxRetries)))
	if err != nil {
		syncRetries = persistence.DefaultMaxRetries
	}
	rps, _ := strconv.ParseFloat(getEnv("SERVICE_REQUESTS_PER_SEC", "10"), 64)
	useSecretManager, _ := strconv.ParseBool(getEnv("USE_GCP_SECRET_MANAGER", "false"))

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		CORSOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),

		Namespace:      getEnv("STORE_NAMESPACE", "wx-ecommerce"),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendMemory)),
		SeedProfile:    getEnv("SEED_PROFILE", "demo"),
		SyncWindow:     time.Duration(syncWindowMs) * time.Millisecond,
		SyncMaxRetries: syncRetries,

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     dbPort,
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "storefront_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
		NATSURL:  os.Getenv("NATS_URL"),

		JWTSecret: getEnv("JWT_SECRET", "your-secret-key"),

		PageRegistryURL: os.Getenv("PAGE_REGISTRY_URL"),
		MediaServiceURL: os.Getenv("MEDIA_SERVICE_URL"),
		ServiceToken:    os.Getenv("SERVICE_TOKEN"),
		RequestsPerSec:  rps,

		GCPProjectID:         os.Getenv("GCP_PROJECT_ID"),
		UseSecretManager:     useSecretManager,
		DBPasswordSecretName: getEnv("DB_PASSWORD_SECRET_NAME", "storefront-db-password"),
		JWTSecretName:        getEnv("JWT_SECRET_NAME", "storefront-jwt-secret"),
	}
}

// IsDevelopment reports whether requests without a token act as the development admin
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Validate rejects configurations main cannot start with
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendMemory, BackendRedis, BackendPostgres:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q (want memory, redis or postgres)", c.StorageBackend)
	}
	if c.Namespace == "" {
		return fmt.Errorf("STORE_NAMESPACE must not be empty")
	}
	if c.Environment == "production" && c.JWTSecret == "your-secret-key" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	return nil
}

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

// InitRedis parses REDIS_URL into a client. Connectivity is checked by the caller.
func InitRedis(cfg *Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	return redis.NewClient(opts), nil
}

// NewLogger builds the JSON logger used across the service
func NewLogger(cfg *Config) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		l.SetLevel(logrus.InfoLevel)
	} else {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
