package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type (
	// Config represents an application configuration.
	Config struct {
		// Subconfigs.
		Logger Logger `yaml:"logger"`
		Bank   Bank   `yaml:"bank"`
	}
	// Config for application's logger.
	Logger struct {
		// Path to store log files. Empty means stderr.
		Path string `yaml:"path" env:"LOG_PATH"`
		// Application logging level.
		Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
		// Log files details.
		MaxSizeMB  int `yaml:"max_size_mb" env-default:"100"`
		MaxBackups int `yaml:"max_backups" env-default:"3"`
		MaxAgeDays int `yaml:"max_age_days" env-default:"28"`
	}
	// Config for the bank itself.
	Bank struct {
		// Preload a pair of demo clients with accounts at startup.
		DemoSeed bool `yaml:"demo_seed" env:"BANKD_DEMO_SEED"`
	}
)

// Load returns an application configuration which is populated from the
// given configuration file and environment variables. A missing file is
// not an error: the environment and defaults alone are enough to run.
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment variables: %w", err)
	}

	return &cfg, nil
}
