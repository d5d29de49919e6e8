package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/puma-pay/puma_gateway/internal/signer"
)

const (
	defaultAppName        = "PumaPayGateway"
	defaultAppEnv         = "development"
	defaultPort           = "8080"
	defaultLogLevel       = "info"
	defaultPartnerBaseURL = "https://stage.buildwithjuno.com"
	defaultShutdownDelay  = 10 * time.Second
	defaultIdempotencyTTL = 24 * time.Hour
	defaultRateLimit      = 30

	idemTTLSecondsEnvVar   = "IDEMPOTENCY_TTL_SECONDS"
	idemTTLDurEnvVar       = "IDEMPOTENCY_TTL"
	shutdownSecondsEnvVar  = "SHUTDOWN_TIMEOUT_SECONDS"
	shutdownDurationEnvVar = "SHUTDOWN_TIMEOUT"
	rateLimitEnvVar        = "RATE_LIMIT_PER_MINUTE"
)

// Config captures gateway runtime configuration loaded from environment
// variables. Partner credentials are opaque strings checked for presence
// only, and only at call time, so the process can boot without them.
type Config struct {
	AppName  string
	AppEnv   string
	Port     string
	LogLevel string

	PartnerAPIKey    string
	PartnerAPISecret string
	PartnerBaseURL   string
	WebhookSecret    string

	DatabaseURL string
	RedisURL    string

	ShutdownPeriod  time.Duration
	IdempotencyTTL  time.Duration
	RateLimitPerMin int
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	cfg := Config{
		AppName:          getEnv("APP_NAME", defaultAppName),
		AppEnv:           getEnv("APP_ENV", defaultAppEnv),
		Port:             getEnv("PORT", defaultPort),
		LogLevel:         strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		PartnerAPIKey:    os.Getenv("PARTNER_API_KEY"),
		PartnerAPISecret: os.Getenv("PARTNER_API_SECRET"),
		PartnerBaseURL:   getEnv("PARTNER_BASE_URL", defaultPartnerBaseURL),
		WebhookSecret:    os.Getenv("WEBHOOK_SECRET"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		ShutdownPeriod:   defaultShutdownDelay,
		IdempotencyTTL:   defaultIdempotencyTTL,
		RateLimitPerMin:  defaultRateLimit,
	}

	if v := os.Getenv(shutdownSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownSecondsEnvVar, err)
		}
		cfg.ShutdownPeriod = time.Duration(seconds) * time.Second
	} else if v := os.Getenv(shutdownDurationEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownDurationEnvVar, err)
		}
		cfg.ShutdownPeriod = d
	}

	if v := os.Getenv(idemTTLSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", idemTTLSecondsEnvVar, err)
		}
		cfg.IdempotencyTTL = time.Duration(seconds) * time.Second
	} else if v := os.Getenv(idemTTLDurEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", idemTTLDurEnvVar, err)
		}
		cfg.IdempotencyTTL = d
	}

	if v := os.Getenv(rateLimitEnvVar); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", rateLimitEnvVar, err)
		}
		cfg.RateLimitPerMin = n
	}

	return cfg, nil
}

// Credentials returns the partner key pair for the signer.
func (c Config) Credentials() signer.Credentials {
	return signer.Credentials{APIKey: c.PartnerAPIKey, APISecret: c.PartnerAPISecret}
}

// IsProduction reports whether the deployment is a production environment.
// Test-only routes (mock deposits) are registered only when this is false.
func (c Config) IsProduction() bool {
	switch strings.ToLower(c.AppEnv) {
	case "production", "prod":
		return true
	default:
		return false
	}
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
