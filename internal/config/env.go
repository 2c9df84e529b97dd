package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from the first .env file found,
// checking the current directory and up to two parents. Variables already
// present in the environment are never overridden.
func LoadEnv() error {
	envPaths := []string{".env", "../.env", "../../.env"}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return err
		}
		break
	}
	return nil
}

// GetEnv gets environment variable with default
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt gets integer environment variable with default
func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvFloat gets float environment variable with default
func GetEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// GetEnvBool gets boolean environment variable with default
func GetEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return defaultValue
}

// DBConfig holds database connection settings.
type DBConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// DBFromEnv builds database settings from the environment. Defaults target
// the local MySQL instance the import pipeline was written against.
func DBFromEnv() DBConfig {
	return DBConfig{
		Driver:   GetEnv("DB_DRIVER", "mysql"),
		Host:     GetEnv("DB_HOST", "localhost"),
		Port:     GetEnvInt("DB_PORT", 3306),
		User:     GetEnv("DB_USER", "root"),
		Password: GetEnv("DB_PASSWORD", ""),
		Name:     GetEnv("DB_NAME", "morocco_health_db"),
	}
}

// EnrichConfig holds OpenRouter enrichment settings.
type EnrichConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	BatchSize int
	RateLimit float64
	Burst     int
	CachePath string
}

// EnrichFromEnv builds enrichment settings from the environment.
func EnrichFromEnv() EnrichConfig {
	return EnrichConfig{
		APIKey:    GetEnv("OPENROUTER_API_KEY", ""),
		BaseURL:   GetEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		Model:     GetEnv("OPENROUTER_MODEL", ""),
		BatchSize: GetEnvInt("ENRICH_BATCH_SIZE", 20),
		RateLimit: GetEnvFloat("ENRICH_RATE_LIMIT", 3),
		Burst:     GetEnvInt("ENRICH_BURST", 5),
		CachePath: GetEnv("ENRICH_CACHE_PATH", "data/cache/enrichment_cache.json"),
	}
}
