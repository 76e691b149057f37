package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	App     AppConfig
	Figma   FigmaConfig
	Vision  VisionConfig
	Codegen CodegenConfig
	Account AccountConfig
}

type ServerConfig struct {
	Port string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

// FigmaConfig holds credentials for the design metadata API.
// An empty AccessToken is a valid state: the pipeline runs in mock mode.
type FigmaConfig struct {
	AccessToken string
	BaseURL     string
}

type VisionConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type CodegenConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// AccountConfig configures the injected trial/quota layer.
// Backend selects the store implementation: "memory", "redis" or "postgres".
type AccountConfig struct {
	Backend        string
	RedisAddr      string
	DatabaseDSN    string
	FreeTrialLimit int
	RatePerSecond  int
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Figma: FigmaConfig{
			AccessToken: getEnv("FIGMA_ACCESS_TOKEN", ""),
			BaseURL:     getEnv("FIGMA_API_BASE_URL", "https://api.figma.com/v1"),
		},
		Vision: VisionConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnv("VISION_API_BASE_URL", "https://api.openai.com/v1"),
			Model:   getEnv("VISION_MODEL", "gpt-4-vision-preview"),
		},
		Codegen: CodegenConfig{
			APIKey:  getEnv("CLAUDE_API_KEY", ""),
			BaseURL: getEnv("CODEGEN_API_BASE_URL", "https://api.anthropic.com/v1"),
			Model:   getEnv("CODEGEN_MODEL", "claude-sonnet-4-20250514"),
		},
		Account: AccountConfig{
			Backend:        getEnv("QUOTA_BACKEND", "memory"),
			RedisAddr:      getEnv("REDIS_ADDR", ""),
			DatabaseDSN:    getEnv("DB_DSN", ""),
			FreeTrialLimit: getEnvAsInt("FREE_TRIAL_LIMIT", 3),
			RatePerSecond:  getEnvAsInt("RATE_PER_SECOND", 5),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Account.Backend {
	case "memory", "redis", "postgres":
	default:
		return fmt.Errorf("QUOTA_BACKEND must be memory, redis or postgres")
	}

	if c.Account.Backend == "redis" && c.Account.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required for the redis quota backend")
	}
	if c.Account.Backend == "postgres" && c.Account.DatabaseDSN == "" {
		return fmt.Errorf("DB_DSN is required for the postgres quota backend")
	}

	return nil
}

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
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}
