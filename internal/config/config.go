// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported values for DB_DRIVER and SESSION_STORE.
const (
	DriverSQLite = "sqlite3"
	DriverMySQL  = "mysql"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
	SessionStoreSQL    = "sql"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable; see Load for names and defaults.
type Config struct {
	Env  string // application environment (dev, test, prod)
	Port string // HTTP port to listen on

	DBDriver string // sqlite3 or mysql
	DBPath   string // sqlite database file
	DBUser   string // mysql user
	DBPass   string // mysql password (empty allowed)
	DBHost   string // mysql host
	DBPort   string // mysql port
	DBName   string // mysql schema

	TMDBAPIKey    string        // provider API key
	TMDBSearchURL string        // provider search endpoint
	TMDBImageBase string        // prefix for backdrop/poster paths
	TMDBTimeout   time.Duration // client timeout for the provider call

	SessionSecret string        // HMAC secret for session cookies
	SessionTTL    time.Duration // lifetime of a login session
	SessionStore  string        // memory, redis or sql
	CookieSecure  bool          // mark cookies Secure (HTTPS deployments)
	BcryptCost    int           // bcrypt cost for password hashing

	CSRFEnabled      bool // protect POST forms with a CSRF token
	EnforceOwnership bool // restrict edit/delete to the owning account

	LogLevel  string // zerolog level
	LogFormat string // json or console

	AMQPURL string // broker URL for activity events; empty disables them

	Redis RedisConfig // used when SessionStore is redis
}

// Load reads configuration values from environment variables.  Required
// variables that are missing and values that cannot be parsed are reported
// together in the returned error.
func Load() (Config, error) {
	r := &envReader{}
	cfg := Config{
		Env:  r.str("APP_ENV", "dev"),
		Port: r.str("APP_PORT", "5000"),

		DBDriver: strings.ToLower(r.str("DB_DRIVER", DriverSQLite)),
		DBPath:   r.str("DB_PATH", "movies.db"),

		TMDBAPIKey:    r.must("TMDB_API_KEY"),
		TMDBSearchURL: r.str("TMDB_SEARCH_URL", "https://api.themoviedb.org/3/search/movie"),
		TMDBImageBase: r.str("TMDB_IMAGE_BASE", "https://image.tmdb.org/t/p/w500"),
		TMDBTimeout:   r.duration("TMDB_TIMEOUT", 10*time.Second),

		SessionSecret: r.must("SESSION_SECRET"),
		SessionTTL:    r.duration("SESSION_TTL", 7*24*time.Hour),
		SessionStore:  strings.ToLower(r.str("SESSION_STORE", SessionStoreMemory)),
		CookieSecure:  r.boolean("COOKIE_SECURE", false),
		BcryptCost:    r.integer("BCRYPT_COST", 10),

		CSRFEnabled:      r.boolean("CSRF_ENABLED", true),
		EnforceOwnership: r.boolean("ENFORCE_OWNERSHIP", false),

		LogLevel:  r.str("LOG_LEVEL", "info"),
		LogFormat: r.str("LOG_FORMAT", "console"),

		AMQPURL: firstNonEmpty(os.Getenv("AMQP_URL"), os.Getenv("RABBITMQ_URL")),

		Redis: LoadRedisConfig(),
	}

	switch cfg.DBDriver {
	case DriverSQLite:
	case DriverMySQL:
		cfg.DBUser = r.must("DB_USER")
		cfg.DBPass = os.Getenv("DB_PASS")
		cfg.DBHost = r.must("DB_HOST")
		cfg.DBPort = r.str("DB_PORT", "3306")
		cfg.DBName = r.must("DB_NAME")
	default:
		r.fail(fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver))
	}

	switch cfg.SessionStore {
	case SessionStoreMemory, SessionStoreRedis, SessionStoreSQL:
	default:
		r.fail(fmt.Errorf("unsupported SESSION_STORE %q", cfg.SessionStore))
	}

	return cfg, errors.Join(r.errs...)
}

// envReader accumulates lookup errors so Load can report all of them at once.
type envReader struct {
	errs []error
}

func (r *envReader) fail(err error) { r.errs = append(r.errs, err) }

// must retrieves the value of a required environment variable.
func (r *envReader) must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		r.fail(fmt.Errorf("missing required env var: %s", key))
	}
	return v
}

func (r *envReader) str(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (r *envReader) integer(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(fmt.Errorf("invalid int for %s: %q", key, v))
		return def
	}
	return n
}

func (r *envReader) boolean(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	r.fail(fmt.Errorf("invalid bool for %s: %q", key, v))
	return def
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(fmt.Errorf("invalid duration for %s: %q", key, v))
		return def
	}
	return d
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
