package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Password is the shared secret compared byte-for-byte against the
	// x-auth-password header on write endpoints. Empty means the server is
	// misconfigured: reads still work, writes are refused with a 500.
	Password string

	SeedFile string // optional YAML seed envelope, loaded when the store is empty

	SnapshotInterval time.Duration // interval between envelope snapshots (default: 24h)
	SnapshotKeep     int           // number of snapshots retained by the GC (default: 14)
	GCInterval       time.Duration // interval between snapshot GC runs (default: 24h)

	// Storage backend. Exactly one transport must be configured:
	// either a Redis address, or an HTTP KV proxy (URL + token).
	RedisAddr           string
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisWarnThreshold  int           // warn after this many attempts

	KVAPIURL   string // HTTP KV proxy base URL (ex: https://kv.example.com/v1)
	KVAPIToken string // bearer token for the HTTP KV proxy

	// Rate limiting on authenticated write endpoints.
	RateLimitBurst  int
	RateLimitPerMin int
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("CLOUDNAV_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("CLOUDNAV_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("CLOUDNAV_LOG_LEVEL", "info"),
		PrettyLog: mustBool("CLOUDNAV_PRETTY_LOG", true),

		// Auth
		Password: getenv("CLOUDNAV_PASSWORD", ""),

		// Seed & snapshots
		SeedFile:         getenv("CLOUDNAV_SEED_FILE", ""),
		SnapshotInterval: mustDuration("CLOUDNAV_SNAPSHOT_INTERVAL", 24*time.Hour),
		SnapshotKeep:     getenvInt("CLOUDNAV_SNAPSHOT_KEEP", 14),
		GCInterval:       mustDuration("CLOUDNAV_GC_INTERVAL", 24*time.Hour),

		// Redis settings
		RedisAddr:           getenv("CLOUDNAV_REDIS_ADDR", ""),
		RedisUser:           getenv("CLOUDNAV_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("CLOUDNAV_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("CLOUDNAV_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		// HTTP KV proxy
		KVAPIURL:   getenv("CLOUDNAV_KV_API", ""),
		KVAPIToken: getenv("CLOUDNAV_KV_TOKEN", ""),

		// Rate limiting
		RateLimitBurst:  getenvInt("CLOUDNAV_RATE_LIMIT_BURST", 10),
		RateLimitPerMin: getenvInt("CLOUDNAV_RATE_LIMIT_PER_MIN", 30),
	}

	// A storage transport is not optional: fail loudly at boot rather than
	// serving an API that can never persist anything.
	if cfg.RedisAddr == "" && (cfg.KVAPIURL == "" || cfg.KVAPIToken == "") {
		panic("❌ FATAL: no storage backend configured: set CLOUDNAV_REDIS_ADDR, or CLOUDNAV_KV_API and CLOUDNAV_KV_TOKEN")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.Password != "" {
			cfgCopy.Password = "***REDACTED***"
		}
		if cfgCopy.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		if cfgCopy.KVAPIToken != "" {
			cfgCopy.KVAPIToken = "***REDACTED***"
		}
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
