package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/vytor/flashdeck/internal/logger"
)

type Config struct {
	Addr                string
	DBPath              string
	DecksPath           string
	StatsKey            string
	LogLevel            string
	RevealDelayMS       int
	ShuffleCountsAsView bool
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent.
	_ = godotenv.Load()

	return Config{
		Addr:                envOr("ADDR", ":8080"),
		DBPath:              envRaw("DB_PATH", "file:flashcards.db"),
		DecksPath:           envOr("DECKS_PATH", ""),
		StatsKey:            envOr("STATS_KEY", "flashcardStats"),
		LogLevel:            envOr("LOG_LEVEL", "INFO"),
		RevealDelayMS:       envIntOr("REVEAL_DELAY_MS", 300),
		ShuffleCountsAsView: envBoolOr("SHUFFLE_COUNTS_AS_VIEW", true),
	}
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if strings.TrimSpace(c.StatsKey) == "" {
		return fmt.Errorf("STATS_KEY cannot be empty")
	}
	if _, ok := logger.LookupLevel(c.LogLevel); !ok {
		return fmt.Errorf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel)
	}
	if c.RevealDelayMS < 0 {
		return fmt.Errorf("REVEAL_DELAY_MS must be >= 0, got %d", c.RevealDelayMS)
	}
	return nil
}

// UsesMemoryStore reports whether stats live only for the lifetime of the process.
func (c Config) UsesMemoryStore() bool {
	return c.DBPath == ""
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envRaw distinguishes an explicitly empty variable from an unset one.
func envRaw(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}
