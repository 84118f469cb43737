// Package configs parses the application configuration from the environment.
package configs

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "FLOW_BANK_"

const (
	StoreTypeText = "text"
	StoreTypeGorm = "gorm"
)

type Config struct {
	// Default location of the text data file. It is read when the bank starts
	// and written when the bank is closed.
	StoragePath string `env:"STORAGE_PATH" envDefault:"bank_data.txt"`

	// Backend used for the default load and save: "text" or "gorm".
	StoreType string `env:"STORE_TYPE" envDefault:"text"`

	// Database settings for the "gorm" store type.
	// DatabaseType is one of "sqlite", "psql" or "mysql".
	DatabaseDSN  string `env:"DATABASE_DSN" envDefault:"bank.db"`
	DatabaseType string `env:"DATABASE_TYPE" envDefault:"sqlite"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Parse parses environment variables prefixed with FLOW_BANK_ to a valid Config.
func Parse() (*Config, error) {
	cfg := Config{}

	if err := env.Parse(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (cfg *Config) validate() error {
	switch cfg.StoreType {
	case StoreTypeText:
		if cfg.StoragePath == "" {
			return fmt.Errorf("%sSTORAGE_PATH can not be empty", envPrefix)
		}
	case StoreTypeGorm:
		if cfg.DatabaseDSN == "" {
			return fmt.Errorf("%sDATABASE_DSN can not be empty", envPrefix)
		}
	default:
		return fmt.Errorf("store type '%s' not supported", cfg.StoreType)
	}

	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}

	return nil
}

// ConfigureLogger sets up the standard logrus logger. Log output goes to
// stderr so it does not interleave with the console prompts on stdout.
func ConfigureLogger(logLevel string) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	lvl, err := log.ParseLevel(logLevel)
	if err != nil {
		log.WithFields(log.Fields{"level": logLevel}).Warn("Invalid log level, using info")
		lvl = log.InfoLevel
	}

	log.SetLevel(lvl)
}
