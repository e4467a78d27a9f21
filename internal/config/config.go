package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// DataFile is where the reading list is persisted between sessions.
	DataFile string

	// SaveInterval controls how often the autosave job flushes the store.
	SaveInterval time.Duration

	// Autosave disables the periodic flush job when false; the store is
	// still flushed on shutdown.
	Autosave bool

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.DataFile = getenvDefault("DATA_FILE", "readings.json")

	intervalStr := getenvDefault("SAVE_INTERVAL", "5m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SAVE_INTERVAL: %w", err)
	}
	cfg.SaveInterval = interval

	cfg.Autosave = getenvBool("AUTOSAVE", true)
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
