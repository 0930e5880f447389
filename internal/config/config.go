package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	CatalogMock    = "mock"
	CatalogDB      = "db"
	CatalogBackend = "backend"

	StoreMemory = "memory"
	StoreDB     = "db"
	StoreRedis  = "redis"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	CatalogSource string
	SeedCatalog   bool

	DatabaseDriver string
	DatabaseURL    string

	StoreDriver   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SessionSecret []byte
	SessionTTL    time.Duration
	CookieSecure  bool
	CSRFEnabled   bool
	CORSOrigins   []string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	KafkaBrokers []string

	BackendURL       string
	BackendProjectID string
	BackendPublicKey string
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// a missing file is fine, the environment may be set directly
		_ = godotenv.Load(f)
	}

	cfg := Config{
		ServiceName: EnvDefault("SERVICE_NAME", "storefront"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		CatalogSource: EnvDefault("CATALOG_SOURCE", CatalogMock),
		SeedCatalog:   EnvBoolDefault("SEED_CATALOG", true),

		DatabaseDriver: EnvDefault("DATABASE_DRIVER", "postgres"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),

		StoreDriver:   EnvDefault("STORE_DRIVER", StoreMemory),
		RedisAddr:     EnvDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       EnvIntDefault("REDIS_DB", 0),

		SessionSecret: []byte(os.Getenv("SESSION_SECRET")),
		SessionTTL:    EnvDurationDefault("SESSION_TTL", 30*24*time.Hour),
		CookieSecure:  EnvBoolDefault("COOKIE_SECURE", false),
		CSRFEnabled:   EnvBoolDefault("CSRF_ENABLED", true),
		CORSOrigins:   CSV(os.Getenv("CORS_ORIGINS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "products"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		BackendURL:       os.Getenv("BACKEND_URL"),
		BackendProjectID: os.Getenv("BACKEND_PROJECT_ID"),
		BackendPublicKey: os.Getenv("BACKEND_PUBLIC_KEY"),
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if len(c.SessionSecret) == 0 {
		errs = append(errs, missing("SESSION_SECRET"))
	}

	switch c.CatalogSource {
	case CatalogMock:
	case CatalogDB:
		if c.DatabaseURL == "" {
			errs = append(errs, missing("DATABASE_URL"))
		}
	case CatalogBackend:
		if c.BackendURL == "" {
			errs = append(errs, missing("BACKEND_URL"))
		}
		if c.BackendProjectID == "" {
			errs = append(errs, missing("BACKEND_PROJECT_ID"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown CATALOG_SOURCE %q", c.CatalogSource))
	}

	switch c.StoreDriver {
	case StoreMemory, StoreRedis:
	case StoreDB:
		if c.DatabaseURL == "" {
			errs = append(errs, missing("DATABASE_URL"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}
	return errors.Join(errs...)
}

// NeedsDB reports whether the catalog or the store runs on the database.
func (c Config) NeedsDB() bool {
	return c.CatalogSource == CatalogDB || c.StoreDriver == StoreDB
}

func missing(env string) error {
	return fmt.Errorf("missing required env %s", env)
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
