package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Hasher strategy names.
const (
	HasherHMAC     = "hmac"
	HasherArgon2id = "argon2id"
)

// Day-count strategy names for the visit graph.
const (
	DayCountElapsed    = "elapsed"
	DayCountDayOfMonth = "day-of-month"
)

// SecurityHeadersConfig holds the security headers applied to every
// response.
type SecurityHeadersConfig struct {
	Enabled            bool
	CSP                string
	HSTSMaxAge         int
	FrameOptions       string
	ContentTypeOptions string
	ReferrerPolicy     string
}

// PasswordPolicyConfig holds password complexity requirements.
type PasswordPolicyConfig struct {
	MinLength        int
	RequireUppercase bool
	RequireLowercase bool
	RequireNumber    bool
	RequireSpecial   bool
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool
	// Global limit applied to every endpoint.
	Requests      int
	WindowMinutes int
	// Stricter limit for login/register.
	AuthRequests      int
	AuthWindowMinutes int
}

// Config holds application configuration.
type Config struct {
	// Server
	ServerAddr string
	ServerPort int

	// Database
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Auth
	JWTSecret       string
	SessionTTL      time.Duration
	VerifySignature bool
	PasswordHasher  string
	PasswordSalt    string

	// Visit graph
	GraphDayCount string

	// Maximum accepted request body size in bytes.
	MaxRequestBodySize int64

	SecurityHeaders SecurityHeadersConfig
	PasswordPolicy  PasswordPolicyConfig
	RateLimit       RateLimitConfig
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		// Server defaults
		ServerAddr: getEnv("SERVER_ADDR", "0.0.0.0"),
		ServerPort: getEnvInt("SERVER_PORT", 3000),

		// Database defaults
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnvInt("DB_PORT", 5432),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "ironclub"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Auth defaults
		JWTSecret:       getEnv("JWT_SECRET", ""),
		SessionTTL:      getEnvDuration("SESSION_TTL", 30*24*time.Hour),
		VerifySignature: getEnvBool("AUTH_VERIFY_SIGNATURE", true),
		PasswordHasher:  getEnv("PASSWORD_HASHER", HasherHMAC),
		PasswordSalt:    getEnv("PASSWORD_SALT", ""),

		GraphDayCount: getEnv("GRAPH_DAY_COUNT", DayCountElapsed),

		MaxRequestBodySize: int64(getEnvInt("MAX_REQUEST_BODY_SIZE", 1<<20)),

		SecurityHeaders: SecurityHeadersConfig{
			Enabled:            getEnvBool("SECURITY_HEADERS_ENABLED", true),
			CSP:                getEnv("SECURITY_HEADERS_CSP", "default-src 'none'"),
			HSTSMaxAge:         getEnvInt("SECURITY_HEADERS_HSTS_MAX_AGE", 31536000),
			FrameOptions:       getEnv("SECURITY_HEADERS_FRAME_OPTIONS", "DENY"),
			ContentTypeOptions: getEnv("SECURITY_HEADERS_CONTENT_TYPE_OPTIONS", "nosniff"),
			ReferrerPolicy:     getEnv("SECURITY_HEADERS_REFERRER_POLICY", "strict-origin-when-cross-origin"),
		},

		PasswordPolicy: PasswordPolicyConfig{
			MinLength:        getEnvInt("PASSWORD_MIN_LENGTH", 8),
			RequireUppercase: getEnvBool("PASSWORD_REQUIRE_UPPERCASE", false),
			RequireLowercase: getEnvBool("PASSWORD_REQUIRE_LOWERCASE", false),
			RequireNumber:    getEnvBool("PASSWORD_REQUIRE_NUMBER", false),
			RequireSpecial:   getEnvBool("PASSWORD_REQUIRE_SPECIAL", false),
		},

		RateLimit: RateLimitConfig{
			Enabled:           getEnvBool("RATE_LIMIT_ENABLED", true),
			Requests:          getEnvInt("RATE_LIMIT_REQUESTS", 100),
			WindowMinutes:     getEnvInt("RATE_LIMIT_WINDOW_MINUTES", 5),
			AuthRequests:      getEnvInt("RATE_LIMIT_AUTH_REQUESTS", 10),
			AuthWindowMinutes: getEnvInt("RATE_LIMIT_AUTH_WINDOW_MINUTES", 5),
		},
	}

	// Validate required fields
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.PasswordHasher != HasherHMAC && cfg.PasswordHasher != HasherArgon2id {
		return nil, fmt.Errorf("PASSWORD_HASHER must be %q or %q", HasherHMAC, HasherArgon2id)
	}
	if cfg.PasswordHasher == HasherHMAC && cfg.PasswordSalt == "" {
		return nil, fmt.Errorf("PASSWORD_SALT is required with the %s hasher", HasherHMAC)
	}
	if cfg.GraphDayCount != DayCountElapsed && cfg.GraphDayCount != DayCountDayOfMonth {
		return nil, fmt.Errorf("GRAPH_DAY_COUNT must be %q or %q", DayCountElapsed, DayCountDayOfMonth)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
