// Package config builds runtime configuration from environment variables so
// main stays lean. Empty backend settings select in-memory fallbacks.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr        string
	PostgresDSN string
	Redis       RedisConfig
	Kafka       KafkaConfig
	Secondary   SecondaryConfig
	JWT         JWTConfig
	Recovery    RecoveryConfig
}

// RedisConfig leaves URL empty when Redis is not configured; callers fall
// back to memory stores.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig selects the audit sink. No brokers means audit stays in memory.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// SecondaryConfig points at the secondary identity store's admin API.
type SecondaryConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type JWTConfig struct {
	SigningKey string
	Issuer     string
	Audience   string
}

// RecoveryConfig tunes the reset flow. Zero values defer to the package
// defaults in otp, token, and ratelimit.
type RecoveryConfig struct {
	CodeTTL       time.Duration
	CodeAttempts  int
	TokenValidity time.Duration
	RateLimit     int
	RateWindow    time.Duration
	AuditBuffer   int
}

func FromEnv() Config {
	jwtKey := getenv("STOREGATE_JWT_SIGNING_KEY", "")
	if jwtKey == "" {
		// Development default; must be overridden in production.
		jwtKey = "dev-secret-key-change-in-production"
	}

	return Config{
		Addr:        getenv("STOREGATE_ADDR", ":8080"),
		PostgresDSN: getenv("STOREGATE_POSTGRES_DSN", ""),
		Redis: RedisConfig{
			URL:          getenv("STOREGATE_REDIS_URL", ""),
			PoolSize:     getint("STOREGATE_REDIS_POOL_SIZE", 10),
			MinIdleConns: getint("STOREGATE_REDIS_MIN_IDLE", 2),
			DialTimeout:  getduration("STOREGATE_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getduration("STOREGATE_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getduration("STOREGATE_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: getlist("STOREGATE_KAFKA_BROKERS"),
			Topic:   getenv("STOREGATE_KAFKA_AUDIT_TOPIC", "storegate.audit"),
		},
		Secondary: SecondaryConfig{
			BaseURL: getenv("STOREGATE_SECONDARY_BASE_URL", ""),
			APIKey:  getenv("STOREGATE_SECONDARY_API_KEY", ""),
			Timeout: getduration("STOREGATE_SECONDARY_TIMEOUT", 3*time.Second),
		},
		JWT: JWTConfig{
			SigningKey: jwtKey,
			Issuer:     getenv("STOREGATE_JWT_ISSUER", "storegate"),
			Audience:   getenv("STOREGATE_JWT_AUDIENCE", "storegate-admin"),
		},
		Recovery: RecoveryConfig{
			CodeTTL:       getduration("STOREGATE_CODE_TTL", 5*time.Minute),
			CodeAttempts:  getint("STOREGATE_CODE_MAX_ATTEMPTS", 5),
			TokenValidity: getduration("STOREGATE_TOKEN_VALIDITY", 10*time.Minute),
			RateLimit:     getint("STOREGATE_RATE_LIMIT", 3),
			RateWindow:    getduration("STOREGATE_RATE_WINDOW", 15*time.Minute),
			AuditBuffer:   getint("STOREGATE_AUDIT_BUFFER", 256),
		},
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getduration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getlist(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
