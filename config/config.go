package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	StoreDriver string
	StoreDSN    string
	RedisHost   string
	RedisPort   string
	APIBaseURL  string
	APITimeout  time.Duration
	AppSecret   string
	DebugAddr   string
	ExitWindow  time.Duration
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		StoreDriver: getEnvOrDefault("STORE_DRIVER", "redis"),
		StoreDSN:    getEnvOrDefault("STORE_DSN", "modashop.db"),
		RedisHost:   getEnvOrDefault("REDIS_HOST", "localhost"),
		RedisPort:   getEnvOrDefault("REDIS_PORT", "6379"),
		APIBaseURL:  getEnvOrDefault("API_BASE_URL", "http://localhost:8080"),
		APITimeout:  getDurationEnv("API_TIMEOUT_SECONDS", 10, time.Second),
		AppSecret:   getEnvOrDefault("APP_SECRET", "modashop-dev-secret"),
		DebugAddr:   getEnvOrDefault("DEBUG_ADDR", ""),
		ExitWindow:  getDurationEnv("EXIT_WINDOW_MS", 2000, time.Millisecond),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
