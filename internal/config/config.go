package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	CORS       CORSConfig
	Log        LogConfig
	Projection ProjectionConfig
	RateLimit  RateLimitConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port            string
	Host            string
	Addr            string // Combined host:port for convenience
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// ProjectionConfig holds configuration for the materialized projection and line editing
type ProjectionConfig struct {
	HorizonMonths    int    // Months ahead covered by the materialized projection
	RefreshSchedule  string // Cron spec for the background refresh, empty disables it
	DefaultAccountID string // Account used when a paycheck, bill or bucket names none
	LineTokenKey     string // Base64 fernet key; generated at startup when empty
	LineTokenTTL     time.Duration
}

// RateLimitConfig holds the limits for manual projection refreshes
type RateLimitConfig struct {
	RefreshPerMinute int
	RefreshBurst     int
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "5001"),
			Host:            getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/budget.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:3000",
				"http://localhost",
			}),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		Projection: ProjectionConfig{
			HorizonMonths:    getEnvInt("PROJECTION_HORIZON_MONTHS", 12),
			RefreshSchedule:  getEnv("PROJECTION_REFRESH_SCHEDULE", "0 2 * * *"),
			DefaultAccountID: getEnv("PROJECTION_DEFAULT_ACCOUNT_ID", ""),
			LineTokenKey:     getEnv("PROJECTION_LINE_TOKEN_KEY", ""),
			LineTokenTTL:     getEnvDuration("PROJECTION_LINE_TOKEN_TTL", 24*time.Hour),
		},
		RateLimit: RateLimitConfig{
			RefreshPerMinute: getEnvInt("RATE_LIMIT_REFRESH_PER_MINUTE", 6),
			RefreshBurst:     getEnvInt("RATE_LIMIT_REFRESH_BURST", 2),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Server.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Server.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.Database.Path == "" {
		problems = append(problems, "database path cannot be empty")
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be text or json", c.Log.Format))
	}

	if c.Projection.HorizonMonths < 1 || c.Projection.HorizonMonths > 120 {
		problems = append(problems, fmt.Sprintf("invalid projection horizon %d: must be between 1 and 120 months", c.Projection.HorizonMonths))
	}

	if c.Projection.RefreshSchedule != "" {
		if _, err := cron.ParseStandard(c.Projection.RefreshSchedule); err != nil {
			problems = append(problems, fmt.Sprintf("invalid refresh schedule '%s': %v", c.Projection.RefreshSchedule, err))
		}
	}

	if c.Projection.LineTokenKey != "" {
		if _, err := fernet.DecodeKey(c.Projection.LineTokenKey); err != nil {
			problems = append(problems, fmt.Sprintf("invalid line token key: %v", err))
		}
	}

	if c.Projection.LineTokenTTL < time.Minute {
		problems = append(problems, fmt.Sprintf("invalid line token TTL %v: must be at least 1 minute", c.Projection.LineTokenTTL))
	}

	if c.RateLimit.RefreshPerMinute < 1 {
		problems = append(problems, fmt.Sprintf("invalid refresh rate %d: must be at least 1 per minute", c.RateLimit.RefreshPerMinute))
	}
	if c.RateLimit.RefreshBurst < 1 {
		problems = append(problems, fmt.Sprintf("invalid refresh burst %d: must be at least 1", c.RateLimit.RefreshBurst))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvList splits a comma separated variable, dropping empty entries.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}
