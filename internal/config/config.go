package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Gemini AI
	GeminiAPIKey string

	// CORS
	AllowedOrigin string
}

// Load reads configuration from the environment once at startup. The
// Gemini API key is allowed to be empty: the server still starts and
// every generate request reports the misconfiguration instead.
func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:          getEnvOrDefault("PORT", "8080"),
		Env:           getEnvOrDefault("ENV", "development"),
		GeminiAPIKey:  getEnvOrDefault("GEMINI_API_KEY", ""),
		AllowedOrigin: getEnvOrDefault("ALLOWED_ORIGIN", "*"),
	}

	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}
