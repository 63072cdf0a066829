// Package config builds runtime configuration from the environment so main
// stays lean.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything the server needs at startup.
type Config struct {
	Addr          string
	DatabaseURL   string
	RedisURL      string
	KafkaBrokers  []string
	EventTopic    string
	JWTSigningKey string

	// HistoryRowLimit bounds the number of audited revision rows scanned by
	// a single historical name search before distinct-id projection.
	HistoryRowLimit int

	// ReferenceCacheTTL bounds how long reference-data existence checks may
	// be served from cache.
	ReferenceCacheTTL time.Duration
}

// FromEnv reads configuration from environment variables, applying
// development defaults where a value is unset.
func FromEnv() Config {
	cfg := Config{
		Addr:              getEnv("CONTACT_REGISTRY_ADDR", ":8080"),
		DatabaseURL:       getEnv("DATABASE_URL", "postgres://localhost:5432/contact_registry?sslmode=disable"),
		RedisURL:          os.Getenv("REDIS_URL"),
		EventTopic:        getEnv("EVENT_TOPIC", "contact-registry.domain-events"),
		JWTSigningKey:     getEnv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		HistoryRowLimit:   getEnvInt("HISTORY_ROW_LIMIT", 10000),
		ReferenceCacheTTL: getEnvDuration("REFERENCE_CACHE_TTL", 5*time.Minute),
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
