package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config holds the scorekeeper server settings
type Config struct {
	Addr           string        `env:"SCOREKEEPER_ADDR" envDefault:":8080"`
	Store          string        `env:"SCOREKEEPER_STORE" envDefault:"sqlite"`
	DBPath         string        `env:"SCOREKEEPER_DB_PATH" envDefault:"scorekeeper.db"`
	PublicURL      string        `env:"SCOREKEEPER_PUBLIC_URL"`
	SubmitCooldown time.Duration `env:"SCOREKEEPER_SUBMIT_COOLDOWN" envDefault:"650ms"`
	Debug          bool          `env:"DEBUG"`
}

// Load reads an optional .env file, then the environment, then flags
func Load(envFile string, args []string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	} else {
		log.Printf("Loaded environment from %s", envFile)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("scorekeeper", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "state store: sqlite or memory")
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that have no safe fallback
func (c Config) Validate() error {
	switch c.Store {
	case StoreSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			return fmt.Errorf("db path is required for the sqlite store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if c.SubmitCooldown < 0 {
		return fmt.Errorf("submit cooldown must not be negative")
	}
	return nil
}

// BaseURL is the address encoded in the share QR code
func (c Config) BaseURL() string {
	if c.PublicURL != "" {
		return strings.TrimRight(c.PublicURL, "/")
	}
	if strings.HasPrefix(c.Addr, ":") {
		return "http://localhost" + c.Addr
	}
	return "http://" + c.Addr
}
