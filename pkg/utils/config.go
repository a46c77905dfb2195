package utils

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"instagram-profile-compare/pkg/external"
	"instagram-profile-compare/pkg/metrics"
)

// Config holds application configuration
type Config struct {
	Environment      string
	ServerPort       string
	DatabaseURL      string // empty keeps session state in memory
	RocketAPIKey     string
	RocketAPIBaseURL string
	MaxPosts         int
	FetchTimeout     time.Duration
	ReportFormURL    string
	ReportPrice      string
	LogLevel         string
}

// LoadConfig loads configuration from environment variables, reading .env first if present
func LoadConfig() *Config {
	_ = godotenv.Load()

	config := &Config{
		Environment:      getEnvWithDefault("ENVIRONMENT", "development"),
		ServerPort:       getEnvWithDefault("PORT", "8080"),
		DatabaseURL:      getEnvWithDefault("DATABASE_URL", ""),
		RocketAPIKey:     getEnvWithDefault("ROCKETAPI_KEY", ""),
		RocketAPIBaseURL: getEnvWithDefault("ROCKETAPI_BASE_URL", external.DefaultBaseURL),
		MaxPosts:         getEnvIntWithDefault("MAX_POSTS", metrics.DefaultMaxPosts),
		FetchTimeout:     time.Duration(getEnvIntWithDefault("FETCH_TIMEOUT_SECONDS", 30)) * time.Second,
		ReportFormURL:    getEnvWithDefault("REPORT_FORM_URL", ""),
		ReportPrice:      getEnvWithDefault("REPORT_PRICE", ""),
		LogLevel:         getEnvWithDefault("LOG_LEVEL", "info"),
	}

	// Validate configuration
	if config.MaxPosts <= 0 {
		config.MaxPosts = metrics.DefaultMaxPosts
		log.Warn().Int("default", metrics.DefaultMaxPosts).Msg("invalid MAX_POSTS, using default")
	}

	if config.MaxPosts > 50 {
		config.MaxPosts = 50
		log.Warn().Msg("MAX_POSTS too high, limiting to: 50")
	}

	if config.FetchTimeout <= 0 {
		config.FetchTimeout = 30 * time.Second
		log.Warn().Msg("invalid FETCH_TIMEOUT_SECONDS, using default: 30")
	}

	// Log configuration (without sensitive data)
	log.Info().
		Str("environment", config.Environment).
		Str("port", config.ServerPort).
		Int("max_posts", config.MaxPosts).
		Dur("fetch_timeout", config.FetchTimeout).
		Bool("postgres_sessions", config.DatabaseURL != "").
		Str("log_level", config.LogLevel).
		Msg("configuration loaded")

	return config
}

// getEnvWithDefault gets an environment variable with a default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

// getEnvIntWithDefault gets an integer environment variable with a default value
func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Str("value", value).Msg("invalid integer environment variable, using default")
	}
	return defaultValue
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return strings.ToLower(c.Environment) == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return strings.ToLower(c.Environment) == "production"
}
