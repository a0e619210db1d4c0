package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenAddr      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	CatalogFile    string        // path to the tools.yaml dataset
	ReloadInterval time.Duration // interval to reload the catalog (default: 24h)
	GCInterval     time.Duration // interval to run garbage collection (default: 24h)
	GCMaxAge       time.Duration // age before rejected/hidden records are purged (default: 30d)

	// Persistence backend selection. Anything unknown falls back to local.
	Backend     string // "local" | "rest" | "postgres" | "surreal"
	APIBaseURL  string // required when Backend == "rest"
	PostgresDSN string // required when Backend == "postgres"

	SurrealURL       string
	SurrealUser      string
	SurrealPassword  string
	SurrealNamespace string
	SurrealDatabase  string

	// Key-value medium backing sessions, preferences, and the local
	// adapter's collections.
	KVMedium string // "file" | "memory" | "redis"
	DataDir  string // directory for the file medium

	JWTSecret string
	TokenTTL  time.Duration

	// Redis settings, read only when KVMedium == "redis".
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisWarnThreshold  int           // warn after this many attempts

	AllowedCIDRS []string // optional, restrict infra/admin endpoints to specific IPs
	TrustProxy   bool     // true => trust X-Forwarded-For headers
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenAddr:      getenv("TOOLDEX_LISTEN_ADDR", ":8080"),
		ShutdownTimeout: mustDuration("TOOLDEX_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("TOOLDEX_LOG_LEVEL", "info"),
		PrettyLog: mustBool("TOOLDEX_PRETTY_LOG", true),

		// Catalog
		CatalogFile:    getenv("TOOLDEX_CATALOG_FILE", "data/tools.yaml"),
		ReloadInterval: mustDuration("TOOLDEX_RELOAD_INTERVAL", 24*time.Hour),
		GCInterval:     mustDuration("TOOLDEX_GC_INTERVAL", 24*time.Hour),
		GCMaxAge:       mustDuration("TOOLDEX_GC_MAX_AGE", 30*24*time.Hour),

		// Persistence backend
		Backend:     getenv("TOOLDEX_BACKEND", "local"),
		APIBaseURL:  getenv("TOOLDEX_API_BASE_URL", ""),
		PostgresDSN: getenv("TOOLDEX_POSTGRES_DSN", ""),

		SurrealURL:       getenv("TOOLDEX_SURREAL_URL", ""),
		SurrealUser:      getenv("TOOLDEX_SURREAL_USER", "root"),
		SurrealPassword:  getenv("TOOLDEX_SURREAL_PASSWORD", ""),
		SurrealNamespace: getenv("TOOLDEX_SURREAL_NAMESPACE", "tooldex"),
		SurrealDatabase:  getenv("TOOLDEX_SURREAL_DATABASE", "tooldex"),

		// Key-value medium
		KVMedium: getenv("TOOLDEX_KV_MEDIUM", "file"),
		DataDir:  getenv("TOOLDEX_DATA_DIR", "data/kv"),

		// Auth
		JWTSecret: requireEnv("TOOLDEX_JWT_SECRET"),
		TokenTTL:  mustDuration("TOOLDEX_TOKEN_TTL", 24*time.Hour),

		// Redis settings
		RedisAddr:           getenv("TOOLDEX_REDIS_ADDR", ""),
		RedisUser:           getenv("TOOLDEX_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("TOOLDEX_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("TOOLDEX_REDIS_DB", 0),
		RedisDT:             mustDuration("TOOLDEX_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("TOOLDEX_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("TOOLDEX_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("TOOLDEX_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("TOOLDEX_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("TOOLDEX_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("TOOLDEX_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("TOOLDEX_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("TOOLDEX_REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedCIDRS: parseAllowedIPs(getenv("TOOLDEX_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("TOOLDEX_TRUST_PROXY", true),
	}

	// The backend keeps the service up by falling back to local, but a
	// selected backend with no connection settings is a config mistake
	// worth failing on.
	switch cfg.Backend {
	case "rest":
		if cfg.APIBaseURL == "" {
			panic("❌ FATAL: TOOLDEX_API_BASE_URL is required when TOOLDEX_BACKEND=rest")
		}
	case "postgres":
		if cfg.PostgresDSN == "" {
			panic("❌ FATAL: TOOLDEX_POSTGRES_DSN is required when TOOLDEX_BACKEND=postgres")
		}
	case "surreal":
		if cfg.SurrealURL == "" {
			panic("❌ FATAL: TOOLDEX_SURREAL_URL is required when TOOLDEX_BACKEND=surreal")
		}
	}
	if cfg.KVMedium == "redis" && cfg.RedisAddr == "" {
		panic("❌ FATAL: TOOLDEX_REDIS_ADDR is required when TOOLDEX_KV_MEDIUM=redis")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.JWTSecret = "***REDACTED***"
		cfgCopy.RedisPassword = "***REDACTED***"
		cfgCopy.SurrealPassword = "***REDACTED***"
		cfgCopy.PostgresDSN = "***REDACTED***"
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
