package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port             int
	LogLevel         string
	GeminiAPIKey     string
	GeminiModel      string
	LLMTimeoutSecs   int
	DatabaseURL      string
	NatsURL          string
	NatsToken        string
	SessionCacheSize int
}

func Load() Config {
	return Config{
		Port:             envInt("QUOTEBOT_PORT", 8620),
		LogLevel:         envStr("LOG_LEVEL", "info"),
		GeminiAPIKey:     envStr("GEMINI_API_KEY", ""),
		GeminiModel:      envStr("QUOTEBOT_MODEL", "gemini-2.0-flash"),
		LLMTimeoutSecs:   envInt("LLM_TIMEOUT_SECONDS", 8),
		DatabaseURL:      envStr("DATABASE_URL", ""),
		NatsURL:          envStr("NATS_URL", ""),
		NatsToken:        envStr("NATS_TOKEN", ""),
		SessionCacheSize: envInt("SESSION_CACHE_SIZE", 1024),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
