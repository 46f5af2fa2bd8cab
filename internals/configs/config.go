package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	JWTSecret       string
	FrontendBaseURL string
	// ActivityLogRetentionDays: -1 = keep forever, otherwise logs older than
	// N days are reported as expired (advisory, no background sweep).
	ActivityLogRetentionDays int
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[WARN] no .env file found, using system ENV")
		} else {
			log.Println("[INFO] .env file loaded")
		}
	} else {
		log.Println("[INFO] running on Railway, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	FrontendBaseURL = GetEnv("FRONTEND_BASE_URL", "http://localhost:3000")
	ActivityLogRetentionDays = GetEnvInt("ACTIVITY_LOG_RETENTION_DAYS", -1)

	if JWTSecret == "" {
		log.Println("[ERROR] JWT_SECRET is not set!")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
