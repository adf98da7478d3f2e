package infra

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv           string
	Port             string
	DatabaseURL      string
	JWTSecret        string
	GeoIPDBPath      string
	OpenAIAPIKey     string
	OpenAIModel      string
	OpenAIBaseURL    string
	AnalysisTimeout  time.Duration
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
	DBMaxConns       int32
	DBMinConns       int32
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		GeoIPDBPath:      os.Getenv("GEOIP_DB_PATH"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-4"),
		OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		AnalysisTimeout:  time.Second * time.Duration(getEnvInt("ANALYSIS_TIMEOUT_SECONDS", 60)),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 90)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		DBMaxConns:       int32(getEnvInt("DB_MAX_CONNS", 10)),
		DBMinConns:       int32(getEnvInt("DB_MIN_CONNS", 1)),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
