package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config chứa toàn bộ application configuration
// Populated from environment variables (.env is loaded by cmd/api before Load)
type Config struct {
	App   AppConfig
	Redis RedisConfig
	MinIO MinIOConfig
	Icon  IconConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
	CacheTTL int // minutes
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string // minioadmin
	SecretKey string // minioadmin
	Bucket    string // campaigns
	UseSSL    bool   // false for local
}

// IconConfig limits what the campaign icon pipeline accepts
type IconConfig struct {
	MaxBytes int64
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Campaign API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			CacheTTL: getEnvInt("REDIS_CACHE_TTL", 15),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "campaigns"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Icon: IconConfig{
			MaxBytes: int64(getEnvInt("ICON_MAX_BYTES", 5*1024*1024)),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.App.Port == "" {
		return fmt.Errorf("APP_PORT must not be empty")
	}
	if c.MinIO.Bucket == "" {
		return fmt.Errorf("MINIO_BUCKET must not be empty")
	}
	if c.Icon.MaxBytes <= 0 {
		return fmt.Errorf("ICON_MAX_BYTES must be positive")
	}

	// Production must not run on the default MinIO credentials
	if c.App.Environment == "production" {
		if c.MinIO.AccessKey == "minioadmin" || c.MinIO.SecretKey == "minioadmin" {
			return fmt.Errorf("MINIO_ACCESS_KEY and MINIO_SECRET_KEY must be set in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
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

func getEnvBool(key string, defaultValue bool) bool {
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
