package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendPostgres = "postgres"
	BackendFile     = "file"
)

type Config struct {
	Port string

	// StoreBackend is "postgres" (default) or "file". The file backend runs
	// without a database: assets and the change log live in StoreFile and the
	// catalogs come from seeded demo data.
	StoreBackend string
	StoreFile    string

	DBHost string
	DBPort string
	DBName string
	DBUser string
	DBPass string

	// DBMaxOpenConns is the maximum number of open connections (default 25).
	DBMaxOpenConns int
	// DBMaxIdleConns is the maximum number of idle connections (default 5).
	DBMaxIdleConns int

	JWTSecret string
	// JWTExpireHours is the token lifetime in hours (default 24).
	JWTExpireHours int

	// Env is "dev" (default) or "prod".
	Env string

	// LogFormat is "text" (default) or "json".
	LogFormat string

	// CORSAllowedOrigins is the comma-separated CORS allowlist. Empty means
	// same-origin only.
	CORSAllowedOrigins []string

	// MetricsRefreshSpec is the cron spec for the gauge refresh job.
	MetricsRefreshSpec string
}

func Load() Config {
	// Optional .env for local development; absence is fine.
	_ = godotenv.Load()

	return Config{
		Port: getEnv("PORT", "8080"),

		StoreBackend: getEnv("STORE_BACKEND", BackendPostgres),
		StoreFile:    getEnv("STORE_FILE", "inventario.json"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBName: getEnv("DB_NAME", "inventario"),
		DBUser: getEnv("DB_USER", "inventario"),
		DBPass: getEnv("DB_PASS", "inventario"),

		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		JWTSecret:      getEnv("JWT_SECRET", "supersecretkey"),
		JWTExpireHours: getEnvInt("JWT_EXPIRE_HOURS", 24),

		Env:       getEnv("ENV", "dev"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),

		MetricsRefreshSpec: getEnv("METRICS_REFRESH_SPEC", "@every 1m"),
	}
}

// DatabaseURL returns the postgres DSN for migrations.
func (c Config) DatabaseURL() string {
	return "postgres://" + c.DBUser + ":" + c.DBPass + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=disable"
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
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
