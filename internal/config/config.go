package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// OpenAI
	OpenAIAPIKey  string
	OpenAIBaseURL string
	ChatModel     string
	ImageModel    string

	// MongoDB
	MongoURI      string
	MongoDatabase string

	// Supabase Storage
	SupabaseURL        string
	SupabaseServiceKey string
	StorageBucket      string

	// Redis
	RedisURL string

	// Auth (optional, only used to derive the rate-limit identity)
	JWTSecret string

	// Rate limits (requests per minute)
	GenerateRateLimit int
	DefaultRateLimit  int

	// Server
	Port        string
	Environment string
	BaseURL     string
}

func Load() (*Config, error) {
	// A missing .env file is not an error; real deployments use the environment.
	_ = godotenv.Load()

	cfg := &Config{
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		ChatModel:     getEnv("CHAT_MODEL", "gpt-4o-mini"),
		ImageModel:    getEnv("IMAGE_MODEL", "dall-e-3"),

		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017/"),
		MongoDatabase: getEnv("MONGO_DATABASE", "mydatabase"),

		SupabaseURL:        getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey: getEnv("SUPABASE_SERVICE_KEY", ""),
		StorageBucket:      getEnv("STORAGE_BUCKET", "mascot-logos"),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		GenerateRateLimit: getEnvInt("GENERATE_RATE_LIMIT", 4),
		DefaultRateLimit:  getEnvInt("DEFAULT_RATE_LIMIT", 100),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabaseServiceKey == "" {
		return fmt.Errorf("SUPABASE_SERVICE_KEY is required")
	}
	if c.GenerateRateLimit <= 0 {
		return fmt.Errorf("GENERATE_RATE_LIMIT must be positive")
	}
	if c.DefaultRateLimit <= 0 {
		return fmt.Errorf("DEFAULT_RATE_LIMIT must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
