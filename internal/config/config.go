package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultTokenHeader is the request header carrying the signed token.
const DefaultTokenHeader = "x-access-token"

// ErrMissingSecret is returned by Validate when SECRET_KEY is unset.
var ErrMissingSecret = errors.New("config: SECRET_KEY must be set")

type Config struct {
	Port string

	DBHost string
	DBPort string
	DBName string
	DBUser string
	DBPass string

	// DBMaxOpenConns is the maximum number of open connections to the database (default 25).
	DBMaxOpenConns int
	// DBMaxIdleConns is the maximum number of idle connections (default 5).
	DBMaxIdleConns int

	// SecretKey signs issued tokens. Required.
	SecretKey string

	// TokenHeader is the header the gate reads the token from.
	TokenHeader string

	// TokenTTLMinutes is the token lifetime (default 30). Set via TOKEN_TTL_MINUTES.
	TokenTTLMinutes int

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string
	TLSKeyFile  string

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string

	// CORSAllowedOrigins is set via CORS_ALLOWED_ORIGINS (comma-separated).
	// When empty, no CORS headers are sent.
	CORSAllowedOrigins []string

	// AdminName and AdminPassword bootstrap the first admin account when both are set.
	AdminName     string
	AdminPassword string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; real environment variables win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port: getEnv("PORT", "8080"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBName: getEnv("DB_NAME", "blog_db"),
		DBUser: getEnv("DB_USER", "bloguser"),
		DBPass: getEnv("DB_PASS", "blogpass"),

		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		SecretKey:       os.Getenv("SECRET_KEY"),
		TokenHeader:     getEnv("TOKEN_HEADER", DefaultTokenHeader),
		TokenTTLMinutes: getEnvInt("TOKEN_TTL_MINUTES", 30),

		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		LogFormat: getEnv("LOG_FORMAT", "text"),

		CORSAllowedOrigins: parseCORSOrigins(getEnv("CORS_ALLOWED_ORIGINS", "")),

		AdminName:     getEnv("ADMIN_NAME", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}
}

// Validate reports configuration that would leave the server unusable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.SecretKey) == "" {
		return ErrMissingSecret
	}
	return nil
}

// TokenTTL returns the token lifetime as a duration.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// parseCORSOrigins splits a comma-separated list of origins and trims spaces. Empty strings are omitted.
func parseCORSOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
