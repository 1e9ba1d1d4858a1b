package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"campaign-backend/pkg/logger"
)

func main() {
	// .env chỉ dùng cho local; production dùng system environment variables
	envFileErr := godotenv.Load()

	env := getEnv("APP_ENV", "development")
	logger.Init(env)

	if envFileErr != nil {
		log.Debug().Msg("No .env file found, using system environment variables")
	}

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info().Str("env", env).Msg("Starting campaign API")

	Serve()
}

// getEnv lấy environment variable với fallback default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
