package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenPort      string        // ex: ":7629"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	DBPath        string        // path to the sqlite database file
	CheckInterval time.Duration // reminder check period (default: 60s)

	SeedFile           string        // optional bookmarks.yaml to load (empty = disabled)
	SeedReloadInterval time.Duration // interval to re-read the seed file (default: 24h)

	NotifyURL    string // webhook URL for user notifications (empty = disabled)
	EventChannel string // redis pub/sub channel for reminder events

	// Redis (event sink; empty addr disables it)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDialTimeout    time.Duration
	RedisReadTimeout    time.Duration
	RedisWriteTimeout   time.Duration
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // cap on the wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	RedisWarnThreshold  int           // warn after this many attempts
}

func Load() *Config {
	// Best effort: a missing .env is the normal case.
	_ = godotenv.Load()

	return &Config{
		ListenPort:      getenv("MARKD_LISTEN_PORT", ":7629"),
		ShutdownTimeout: mustDuration("MARKD_SHUTDOWN_TIMEOUT", 5*time.Second),

		LogLevel:  getenv("MARKD_LOG_LEVEL", "info"),
		PrettyLog: mustBool("MARKD_PRETTY_LOG", true),

		DBPath:        getenv("MARKD_DB_PATH", "markd.db"),
		CheckInterval: mustDuration("MARKD_CHECK_INTERVAL", 60*time.Second),

		SeedFile:           getenv("MARKD_SEED_FILE", ""),
		SeedReloadInterval: mustDuration("MARKD_SEED_RELOAD_INTERVAL", 24*time.Hour),

		NotifyURL:    getenv("MARKD_NOTIFY_URL", ""),
		EventChannel: getenv("MARKD_EVENT_CHANNEL", "markd:events"),

		RedisAddr:           getenv("MARKD_REDIS_ADDR", ""),
		RedisUser:           getenv("MARKD_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("MARKD_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("MARKD_REDIS_DB", 0),
		RedisDialTimeout:    mustDuration("MARKD_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisReadTimeout:    mustDuration("MARKD_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWriteTimeout:   mustDuration("MARKD_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("MARKD_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("MARKD_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("MARKD_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("MARKD_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("MARKD_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisWarnThreshold:  getenvInt("MARKD_REDIS_WARN_THRESHOLD", 3),
	}
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
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
