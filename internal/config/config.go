package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment at startup.
type Config struct {
	Environment string
	Port        int
	FrontendURL string

	ServiceName    string
	ServiceVersion string

	DB    DBConfig
	Redis RedisConfig

	CacheTTL        time.Duration
	RateLimitRPS    float64
	RateLimitBurst  int
	ShutdownTimeout time.Duration
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the postgres connection URL.
func (c DBConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
}

// Enabled reports whether a Redis cache was configured.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load reads the configuration. Outside production a .env file in the
// working directory is applied first; variables already set win.
func Load() (*Config, error) {
	if environment() != "production" {
		_ = godotenv.Load()
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	r := reader{getenv: getenv}

	env := r.getString("APP_ENV", "")
	if env == "" {
		env = r.getString("NODE_ENV", "development")
	}

	cfg := &Config{
		Environment:    env,
		Port:           r.getInt("PORT", 5000),
		FrontendURL:    r.getString("FRONTEND_URL", "http://localhost:5173"),
		ServiceName:    r.getString("SERVICE_NAME", "userhub-backend"),
		ServiceVersion: r.getString("SERVICE_VERSION", "1.0.0"),
		DB: DBConfig{
			Host:     r.getString("DB_HOST", "localhost"),
			Port:     r.getInt("DB_PORT", 5432),
			User:     r.getString("DB_USER", "postgres"),
			Password: r.getString("DB_PASSWORD", ""),
			Name:     r.getString("DB_NAME", "userhub"),
			SSLMode:  r.getString("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     r.getString("REDIS_HOST", ""),
			Port:     r.getInt("REDIS_PORT", 6379),
			Password: r.getString("REDIS_PASSWORD", ""),
		},
		CacheTTL:        time.Duration(r.getInt("CACHE_TTL_SECONDS", 60)) * time.Second,
		RateLimitRPS:    r.getFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:  r.getInt("RATE_LIMIT_BURST", 20),
		ShutdownTimeout: time.Duration(r.getInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
	}

	if r.err != nil {
		return nil, r.err
	}
	return cfg, nil
}

func environment() string {
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	return os.Getenv("NODE_ENV")
}

// reader keeps the first parse error so FromEnv can stay linear.
type reader struct {
	getenv func(string) string
	err    error
}

func (r *reader) getString(key, def string) string {
	if v := r.getenv(key); v != "" {
		return v
	}
	return def
}

func (r *reader) getInt(key string, def int) int {
	v := r.getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return n
}

func (r *reader) getFloat(key string, def float64) float64 {
	v := r.getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return f
}

func (r *reader) fail(key, value string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("invalid value %q for %s: %w", value, key, err)
	}
}
