package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the gateway.
type Config struct {
	App       AppConfig
	Backend   BackendConfig
	Cookies   CookieConfig
	Session   SessionConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	RateLimit RateLimitConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// BackendConfig locates the account backend API. The base URL is resolved
// once at startup: internal URL first (private network), then public URL,
// then the fallback.
type BackendConfig struct {
	InternalURL    string
	PublicURL      string
	FallbackURL    string
	TimeoutSeconds int
}

// CookieConfig defines the session cookie policy. Observed deployments
// disagreed on the access-token lifetime (1 day vs 15 minutes) and on the
// SameSite/Secure flags, so all of these are configuration, not constants.
type CookieConfig struct {
	AccessTTLSeconds       int
	RefreshTTLSeconds      int
	VerificationTTLSeconds int
	SameSite               string
	Secure                 bool
}

// SessionConfig controls edge-side token inspection. When JWTSecret is empty
// the guard decodes role claims without signature verification and the
// backend remains the only authority; when set, signatures are verified at
// the edge as well.
type SessionConfig struct {
	JWTSecret string
}

// PostgresConfig holds audit database connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// RateLimitConfig bounds OTP resend attempts per pending signup.
type RateLimitConfig struct {
	ResendMaxAttempts   int
	ResendWindowSeconds int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "account-gateway"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "3000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Backend: BackendConfig{
			InternalURL:    os.Getenv("INTERNAL_API_URL"),
			PublicURL:      os.Getenv("PUBLIC_API_URL"),
			FallbackURL:    getEnv("API_FALLBACK_URL", "http://localhost:5000/api"),
			TimeoutSeconds: getEnvAsInt("BACKEND_TIMEOUT_SECONDS", 10),
		},
		Cookies: CookieConfig{
			AccessTTLSeconds:       getEnvAsInt("COOKIE_ACCESS_TTL_SECONDS", 24*60*60),
			RefreshTTLSeconds:      getEnvAsInt("COOKIE_REFRESH_TTL_SECONDS", 7*24*60*60),
			VerificationTTLSeconds: getEnvAsInt("COOKIE_VERIFICATION_TTL_SECONDS", 10*60),
			SameSite:               getEnv("COOKIE_SAME_SITE", "Lax"),
			Secure:                 getEnvAsBool("COOKIE_SECURE", false),
		},
		Session: SessionConfig{
			JWTSecret: os.Getenv("SESSION_JWT_SECRET"),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		RateLimit: RateLimitConfig{
			ResendMaxAttempts:   getEnvAsInt("OTP_RESEND_MAX_ATTEMPTS", 3),
			ResendWindowSeconds: getEnvAsInt("OTP_RESEND_WINDOW_SECONDS", 10*60),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// BaseURL resolves the backend base URL: internal first, then public, then fallback.
func (b BackendConfig) BaseURL() string {
	if b.InternalURL != "" {
		return b.InternalURL
	}
	if b.PublicURL != "" {
		return b.PublicURL
	}
	return b.FallbackURL
}

// Timeout returns the backend call timeout.
func (b BackendConfig) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// AccessTTL returns the access-token cookie lifetime.
func (c CookieConfig) AccessTTL() time.Duration {
	return time.Duration(c.AccessTTLSeconds) * time.Second
}

// RefreshTTL returns the refresh-token cookie lifetime.
func (c CookieConfig) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshTTLSeconds) * time.Second
}

// VerificationTTL returns the pending-verification ticket lifetime.
func (c CookieConfig) VerificationTTL() time.Duration {
	return time.Duration(c.VerificationTTLSeconds) * time.Second
}

// ResendWindow returns the OTP resend throttle window.
func (r RateLimitConfig) ResendWindow() time.Duration {
	return time.Duration(r.ResendWindowSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
