package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	LLM      LLMConfig
	Stripe   StripeConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port        string
	Env         string
	CORSOrigins string
}

type DatabaseConfig struct {
	// Driver is either sqlite or postgres
	Driver      string
	Path        string
	PostgresURL string
	// MaxOpenConns caps the PostgreSQL connection pool
	MaxOpenConns int
}

type LLMConfig struct {
	Provider string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

type StripeConfig struct {
	APIKey        string
	WebhookSecret string
}

type LogConfig struct {
	Level string
}

// Load reads the configuration from the environment, after loading a .env
// file when one exists
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			Env:         getEnv("APP_ENV", "development"),
			CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Driver:       strings.ToLower(getEnv("DATABASE_DRIVER", "sqlite")),
			Path:         getEnv("DATABASE_PATH", "tokenomics.db"),
			PostgresURL:  getEnv("POSTGRES_URL", ""),
			MaxOpenConns: getEnvAsInt("DATABASE_MAX_OPEN_CONNS", 10),
		},
		LLM: LLMConfig{
			Provider: strings.ToLower(getEnv("LLM_PROVIDER", "anthropic")),
			APIKey:   getEnv("LLM_API_KEY", ""),
			Model:    getEnv("LLM_MODEL", ""),
			Timeout:  getEnvAsDuration("LLM_TIMEOUT", 90*time.Second),
		},
		Stripe: StripeConfig{
			APIKey:        getEnv("STRIPE_API_KEY", ""),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

// PortNumber returns the listen port, falling back to 8080 when PORT is not
// numeric
func (c *Config) PortNumber() int {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil {
		return 8080
	}
	return port
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
