package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const devJWTSecret = "development-only-secret"

type Config struct {
	Env          string
	Port         string
	AllowOrigins string
	DatabaseURL  string
	DBMaxOpen    int
	DBMaxIdle    int
	DBMaxLife    time.Duration

	JWTSecret     string
	TokenTTL      time.Duration
	BcryptCost    int
	TZDefault     string
	ReqTimeoutSec int
	SeedDefaults  bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func atob(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// databaseURL prefers DATABASE_URL and falls back to the DB_* parts.
func databaseURL() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}
	host := os.Getenv("DB_HOST")
	if host == "" {
		return ""
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), host,
		getenv("DB_PORT", "5432"), os.Getenv("DB_NAME"), getenv("DB_SSLMODE", "disable"),
	)
}

func Load() *Config {
	return &Config{
		Env:           getenv("APP_ENV", "production"),
		Port:          getenv("PORT", "3333"),
		AllowOrigins:  getenv("ALLOW_ORIGINS", "*"),
		DatabaseURL:   databaseURL(),
		DBMaxOpen:     atoi("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdle:     atoi("DB_MAX_IDLE_CONNS", 5),
		DBMaxLife:     time.Duration(atoi("DB_CONN_MAX_LIFETIME_MIN", 30)) * time.Minute,
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenTTL:      time.Duration(atoi("TOKEN_TTL_HOURS", 7*24)) * time.Hour,
		BcryptCost:    atoi("BCRYPT_COST", 10),
		TZDefault:     getenv("TZ_DEFAULT", "America/Sao_Paulo"),
		ReqTimeoutSec: atoi("REQUEST_TIMEOUT_SECONDS", 30),
		SeedDefaults:  atob("SEED_DEFAULT_CATEGORIES", true),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate fills development fallbacks and rejects configs the server
// cannot run with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		if !c.IsDevelopment() {
			return errors.New("JWT_SECRET is required")
		}
		c.JWTSecret = devJWTSecret
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL or DB_HOST is required")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL_HOURS must be positive")
	}
	if _, err := time.LoadLocation(c.TZDefault); err != nil {
		return fmt.Errorf("TZ_DEFAULT: %w", err)
	}
	return nil
}

// Location is the calendar used to decide what "this month" means.
func (c *Config) Location() *time.Location {
	if loc, err := time.LoadLocation(c.TZDefault); err == nil {
		return loc
	}
	return time.Local
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.ReqTimeoutSec) * time.Second
}
