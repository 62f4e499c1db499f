package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Port         string
	StoreURL     string
	LogLevel     string
	JWTSecret    string
	RatesURL     string
	CacheTTLSecs int
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		StoreURL:     getEnv("STORE_URL", "http://localhost:3000"),
		LogLevel:     getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:    getEnv("JWT_SECRET", "secret"),
		RatesURL:     getEnv("RATES_URL", "https://rates.bancasol.example/DailyInfoWebServ/DailyInfo.asmx"),
		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SenderEmail:  getEnv("SENDER_EMAIL", "noreply@bancasol.example"),
	}

	ttl, err := strconv.Atoi(getEnv("CACHE_TTL", "30"))
	if err != nil || ttl < 0 {
		return nil, fmt.Errorf("CACHE_TTL must be a non-negative integer")
	}
	cfg.CacheTTLSecs = ttl

	if cfg.StoreURL == "" {
		return nil, fmt.Errorf("STORE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
