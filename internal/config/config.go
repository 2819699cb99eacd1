package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/pratik-mahalle/userdata/internal/pkg/validator"
)

// Default values
const (
	DefaultBaseURL    = "http://localhost:3000"
	DefaultUsersPath  = "/users"
	DefaultTimeout    = 30 * time.Second
	DefaultServerAddr = ":3000"
	DefaultDataFile   = "data/users.json"
)

// Config holds all application configuration
type Config struct {
	Source  SourceConfig
	Logging LoggingConfig
	Server  ServerConfig
	Metrics MetricsConfig
}

// SourceConfig describes the remote users endpoint
type SourceConfig struct {
	BaseURL   string        `env:"USERDATA_BASE_URL" validate:"required,url"`
	UsersPath string        `env:"USERDATA_USERS_PATH" validate:"required,startswith=/"`
	Timeout   time.Duration `env:"USERDATA_TIMEOUT" validate:"gt=0"`
	APIKey    string        `env:"USERDATA_API_KEY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" validate:"oneof=debug info warn error fatal disabled"`
	Format string `env:"LOG_FORMAT" validate:"oneof=json console auto"`
}

// ServerConfig contains the mock users server configuration
type ServerConfig struct {
	Addr            string        `env:"MOCK_SERVER_ADDR" validate:"required,hostname_port"`
	DataFile        string        `env:"MOCK_SERVER_DATA" validate:"required"`
	RateLimit       float64       `env:"MOCK_SERVER_RATE_LIMIT" validate:"gt=0"`
	Burst           int           `env:"MOCK_SERVER_BURST" validate:"gt=0"`
	AllowedOrigins  []string      `env:"MOCK_SERVER_ALLOWED_ORIGINS"`
	ShutdownTimeout time.Duration `env:"MOCK_SERVER_SHUTDOWN_TIMEOUT" validate:"gt=0"`
}

// MetricsConfig controls where CLI runs export their metrics
type MetricsConfig struct {
	File string `env:"METRICS_FILE"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors as it's optional)
	_ = godotenv.Load()

	cfg := &Config{
		Source: SourceConfig{
			BaseURL:   getEnv("USERDATA_BASE_URL", DefaultBaseURL),
			UsersPath: getEnv("USERDATA_USERS_PATH", DefaultUsersPath),
			Timeout:   getEnvAsDuration("USERDATA_TIMEOUT", DefaultTimeout),
			APIKey:    getEnv("USERDATA_API_KEY", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "auto"),
		},
		Server: ServerConfig{
			Addr:            getEnv("MOCK_SERVER_ADDR", DefaultServerAddr),
			DataFile:        getEnv("MOCK_SERVER_DATA", DefaultDataFile),
			RateLimit:       getEnvAsFloat("MOCK_SERVER_RATE_LIMIT", 100),
			Burst:           getEnvAsInt("MOCK_SERVER_BURST", 200),
			AllowedOrigins:  getEnvAsList("MOCK_SERVER_ALLOWED_ORIGINS", []string{"*"}),
			ShutdownTimeout: getEnvAsDuration("MOCK_SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Metrics: MetricsConfig{
			File: getEnv("METRICS_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	return validator.Join(validator.New().Validate(c))
}

// UsersURL returns the full address of the users endpoint
func (c SourceConfig) UsersURL() string {
	return c.BaseURL + c.UsersPath
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
