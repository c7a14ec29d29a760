package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// Wikidata translation store backends.
const (
	StoreNone  = "none"
	StoreBbolt = "bbolt"
	StoreRedis = "redis"
)

const (
	defaultDatabaseURL = "postgres://localhost:5432/omtnames?sslmode=disable"
	defaultLanguages   = "en,de,fr,es,it,ja,ru,zh"
)

type Config struct {
	DevMode           bool
	DatabaseURL       string
	MigrationsPath    string
	Languages         []string
	Transliterate     bool
	CatalogFiles      []string
	WikidataStore     string
	WikidataBboltPath string
	RedisURL          string
	Workers           int
	BatchSize         int
	MetricsAddr       string
}

// Load reads the configuration from the environment (and an optional .env
// file) and validates it.
func Load() (*Config, error) {
	// .env is optional when variables come from the environment (Docker, CI, ...).
	_ = godotenv.Load()

	cfg := &Config{
		DevMode:           getEnvAsBool("DEV_MODE", false),
		DatabaseURL:       getEnv("DATABASE_URL", defaultDatabaseURL),
		MigrationsPath:    getEnv("MIGRATIONS_PATH", "migrations"),
		Languages:         splitList(getEnv("LANGUAGES", defaultLanguages)),
		Transliterate:     getEnvAsBool("TRANSLITERATE", true),
		CatalogFiles:      splitList(os.Getenv("CATALOG_FILES")),
		WikidataStore:     strings.ToLower(getEnv("WIKIDATA_STORE", StoreNone)),
		WikidataBboltPath: getEnv("WIKIDATA_BBOLT_PATH", "wikidata.db"),
		RedisURL:          os.Getenv("REDIS_URL"),
		Workers:           getEnvAsInt("WORKERS", 4),
		BatchSize:         getEnvAsInt("BATCH_SIZE", 500),
		MetricsAddr:       os.Getenv("METRICS_ADDR"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate applies the configuration rules.
func (c *Config) validate() error {
	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
	}

	if len(c.Languages) == 0 {
		return fmt.Errorf("config: LANGUAGES must list at least one language")
	}
	for _, l := range c.Languages {
		if _, err := language.Parse(l); err != nil {
			return fmt.Errorf("config: invalid language %q in LANGUAGES: %w", l, err)
		}
	}

	switch c.WikidataStore {
	case StoreNone:
	case StoreBbolt:
		if strings.TrimSpace(c.WikidataBboltPath) == "" {
			return fmt.Errorf("config: WIKIDATA_BBOLT_PATH is required when WIKIDATA_STORE=bbolt")
		}
	case StoreRedis:
		if strings.TrimSpace(c.RedisURL) == "" {
			return fmt.Errorf("config: REDIS_URL is required when WIKIDATA_STORE=redis")
		}
	default:
		return fmt.Errorf("config: WIKIDATA_STORE must be one of none, bbolt, redis (got %q)", c.WikidataStore)
	}

	if c.Workers < 1 {
		return fmt.Errorf("config: WORKERS must be at least 1 (got %d)", c.Workers)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("config: BATCH_SIZE must be at least 1 (got %d)", c.BatchSize)
	}

	return nil
}

// NewLogger returns a text logger at debug level in dev mode, otherwise a
// JSON logger at info level.
func (c *Config) NewLogger() *slog.Logger {
	if c.DevMode {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && strings.TrimSpace(val) != "" {
		return val
	}
	return fallback
}

// getEnvAsInt returns fallback when the variable is unset. An unparsable
// value yields -1 so validate reports it.
func getEnvAsInt(key string, fallback int) int {
	valStr, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(valStr) == "" {
		return fallback
	}
	val, err := strconv.Atoi(strings.TrimSpace(valStr))
	if err != nil {
		return -1
	}
	return val
}

func getEnvAsBool(key string, fallback bool) bool {
	val, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return val
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
