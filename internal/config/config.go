package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pullerize/postcal/internal/api"
)

// Config holds application configuration
type Config struct {
	APIBaseURL string
	APIToken   string
	ProjectID  int64
	LocalMode  bool
	DataDir    string
	DBPath     string
	Theme      string
}

// Load reads configuration from .env (if present) and the environment.
// A missing API base URL switches the client into local mode.
func Load() *Config {
	godotenv.Load()

	cfg := &Config{
		APIBaseURL: getEnv("POSTCAL_API_URL", ""),
		APIToken:   getEnv("POSTCAL_API_TOKEN", ""),
		ProjectID:  getEnvInt64("POSTCAL_PROJECT_ID", 1),
		DataDir:    getEnv("POSTCAL_DATA_DIR", api.DefaultDataDir()),
		Theme:      getEnv("POSTCAL_THEME", ""),
	}
	cfg.DBPath = getEnv("POSTCAL_DB_PATH", api.DefaultDBPath())
	cfg.LocalMode = cfg.APIBaseURL == "" || getEnv("POSTCAL_LOCAL", "") == "1"
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
