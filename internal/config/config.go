package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv      string
	Port        string
	StoreDriver string // sqlite | memory
	DBDSN       string
	// SnapshotFile is only used by the memory store; empty keeps state volatile.
	SnapshotFile string
	LogFile      string

	// SessionSecret is a base64 encoded 32 byte key for cookie encryption.
	SessionSecret string
	SessionTTL    time.Duration
	CookieSecure  bool
	CSRFEnabled   bool
	CORSOrigins   string
	BodyLimit     int

	MaxLoginAttempts  int
	LockDuration      time.Duration
	LoginRateMax      int
	ProtectedUsername string

	BcryptCost          int
	SeedAdminPassword   string
	SeedManagerPassword string

	RedisAddr     string
	RedisPassword string
}

func (c Config) IsProduction() bool { return c.AppEnv == "production" }

func Load() Config {
	// .env is optional; real deployments pass plain env vars.
	_ = godotenv.Load()

	cfg := Config{
		AppEnv:       getEnv("APP_ENV", "development"),
		Port:         getEnv("PORT", "8080"),
		StoreDriver:  strings.ToLower(getEnv("STORE_DRIVER", "sqlite")),
		DBDSN:        getEnv("DB_DSN", "chemcatalog.db"),
		SnapshotFile: os.Getenv("SNAPSHOT_FILE"),
		LogFile:      os.Getenv("LOG_FILE"),

		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    getDuration("SESSION_TTL", 30*24*time.Hour),
		CookieSecure:  getBool("COOKIE_SECURE", false),
		CSRFEnabled:   getBool("CSRF_ENABLED", true),
		CORSOrigins:   getEnv("CORS_ORIGINS", "http://localhost:5173"),
		BodyLimit:     getInt("BODY_LIMIT", 1<<20),

		MaxLoginAttempts:  getInt("LOGIN_MAX_ATTEMPTS", 5),
		LockDuration:      getDuration("LOGIN_LOCK_DURATION", 15*time.Minute),
		LoginRateMax:      getInt("LOGIN_RATE_MAX", 20),
		ProtectedUsername: getEnv("PROTECTED_USERNAME", "admin"),

		BcryptCost:          getInt("BCRYPT_COST", 12),
		SeedAdminPassword:   getEnv("SEED_ADMIN_PASSWORD", "Admin12345"),
		SeedManagerPassword: getEnv("SEED_MANAGER_PASSWORD", "Manager12345"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	log.Printf("[config] APP_ENV=%s PORT=%s STORE_DRIVER=%s DB_DSN=%s SNAPSHOT_FILE=%s LOG_FILE=%s REDIS_ADDR=%s SESSION_SECRET=%s",
		cfg.AppEnv, cfg.Port, cfg.StoreDriver, cfg.DBDSN, cfg.SnapshotFile, cfg.LogFile, cfg.RedisAddr, redact(cfg.SessionSecret))
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[config] invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[config] invalid %s=%q, using %t", key, v, def)
		return def
	}
	return b
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[config] invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

func redact(s string) string {
	if s == "" {
		return "<unset>"
	}
	return "<redacted>"
}
