// Package config loads the service configuration from environment
// variables, with a .env.local file honored for local development.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the service configuration.
type Config struct {
	// Env is the deployment environment ("production" enables release mode).
	Env string
	// Port is the HTTP listen port.
	Port string
	// DataDir is where the embedded library database lives.
	DataDir string
	// AllowedOrigins are extra CORS origins beyond the dev defaults.
	AllowedOrigins []string

	// GeminiAPIKey enables the AI features; when empty the service runs in
	// library-only mode.
	GeminiAPIKey string
	// AnalysisModel answers analysis and recommendation requests.
	AnalysisModel string
	// ChatModel answers per-book chat.
	ChatModel string

	// ChatRatePerSec and ChatBurst bound per-IP chat traffic.
	ChatRatePerSec float64
	ChatBurst      int
	// DailyChatQuota bounds total chat requests per day across all clients.
	DailyChatQuota int64
}

// Load reads configuration from the environment.
func Load() *Config {
	godotenv.Load(".env.local")

	cfg := &Config{
		Env:            os.Getenv("ENV"),
		Port:           getEnv("PORT", "8080"),
		DataDir:        getEnv("DATA_DIR", "data"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		AnalysisModel:  getEnv("ANALYSIS_MODEL", "gemini-2.5-flash"),
		ChatModel:      getEnv("CHAT_MODEL", "gemini-2.5-flash"),
		ChatRatePerSec: getFloat("CHAT_RATE_PER_SEC", 1),
		ChatBurst:      getInt("CHAT_BURST", 3),
		DailyChatQuota: getInt64("DAILY_CHAT_QUOTA", 500),
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[WARN] Invalid %s=%q, using default %d", key, value, fallback)
		return fallback
	}
	return parsed
}

func getInt64(key string, fallback int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Printf("[WARN] Invalid %s=%q, using default %d", key, value, fallback)
		return fallback
	}
	return parsed
}

func getFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("[WARN] Invalid %s=%q, using default %v", key, value, fallback)
		return fallback
	}
	return parsed
}
