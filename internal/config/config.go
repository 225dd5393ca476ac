package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	// LLM
	TogetherAPIKey  string
	TogetherBaseURL string
	DefaultModel    string
	DefaultTemp     float64

	// Meta Ads
	MetaAccessToken string // default token; sessions may override
	FacebookPageID  string
	GraphBaseURL    string

	// Storage
	RedisURL   string
	SessionTTL time.Duration

	// Auth
	JWTSecret     string
	JWTExpiration time.Duration

	// Server
	APIPort  string
	LogLevel string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		TogetherAPIKey:  getEnv("TOGETHER_API_KEY", ""),
		TogetherBaseURL: getEnv("TOGETHER_BASE_URL", "https://api.together.xyz/v1"),
		DefaultModel:    getEnv("DEFAULT_MODEL", "meta-llama/Meta-Llama-3.1-8B-Instruct-Turbo"),
		DefaultTemp:     getEnvFloat("DEFAULT_TEMP", 0.7),

		MetaAccessToken: getEnv("META_ACCESS_TOKEN", ""),
		FacebookPageID:  getEnv("FACEBOOK_PAGE_ID", ""),
		GraphBaseURL:    getEnv("GRAPH_BASE_URL", "https://graph.facebook.com"),

		RedisURL:   getEnv("REDIS_URL", "redis://localhost:6379/0"),
		SessionTTL: time.Duration(getEnvInt("SESSION_TTL_MINUTES", 240)) * time.Minute,

		JWTSecret:     getEnv("JWT_SECRET", "change-me-in-production"),
		JWTExpiration: time.Duration(getEnvInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,

		APIPort:  getEnv("API_PORT", "3000"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func (c *Config) Validate(log *zap.Logger) {
	if c.TogetherAPIKey == "" {
		log.Warn("TOGETHER_API_KEY is not set, content generation will fail until a key is provided")
	}
	if c.MetaAccessToken == "" {
		log.Warn("META_ACCESS_TOKEN is not set, sessions must supply their own token")
	}
	if c.JWTSecret == "change-me-in-production" {
		log.Warn("JWT_SECRET is default, change in production")
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}
