package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	WebhookBase  string
	APIKey       string
	CachePath    string
	CacheTTLSecs int64
}

func Load() *Config {
	// .env é opcional; em produção as variáveis vêm do ambiente.
	_ = godotenv.Load()

	return &Config{
		Port:         getEnv("PORT", "8080"),
		WebhookBase:  getEnvOptional("BITRIX_WEBHOOK_BASE"),
		APIKey:       getEnvOptional("API_KEY"),
		CachePath:    getEnv("DICT_CACHE_PATH", "./dictcache.db"),
		CacheTTLSecs: getEnvInt64("DICT_CACHE_TTL", 300),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvOptional(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func getEnvInt64(key string, fallback int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
