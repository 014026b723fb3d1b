package config

import (
	"os"
	"strings"
	"time"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr string

	// BackendURL is the base URL of the external storefront API.
	BackendURL string
	// BackendTimeout bounds outbound calls; zero leaves them unbounded.
	BackendTimeout time.Duration

	StorageDriver  string
	StoragePath    string
	DatabaseURL    string
	RedisAddr      string
	CartStorageKey string

	CORSAllowOrigins []string

	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		Addr:           getenv("STOREFRONT_ADDR", ":8080"),
		BackendURL:     strings.TrimRight(getenv("BACKEND_URL", "http://localhost:7000"), "/"),
		BackendTimeout: parseDuration(getenv("BACKEND_TIMEOUT", "0"), 0),

		StorageDriver:  strings.ToLower(getenv("STORAGE_DRIVER", "file")),
		StoragePath:    getenv("STORAGE_PATH", "./storefront-data.json"),
		DatabaseURL:    getenv("DATABASE_URL", ""),
		RedisAddr:      getenv("REDIS_ADDR", "localhost:6379"),
		CartStorageKey: getenv("CART_STORAGE_KEY", "cart"),

		CORSAllowOrigins: splitCSV(getenv("CORS_ALLOW_ORIGINS", "*")),

		LogLevel:  strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getenv("LOG_FORMAT", "text")),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
