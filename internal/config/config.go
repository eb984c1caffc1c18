package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the runtime configuration read from the environment. Command
// line flags override these values.
type Config struct {
	// DBPath is the SQLite file. Empty selects store.DefaultDBPath.
	DBPath string `env:"MATHDRILL_DB"`
	UserID string `env:"MATHDRILL_USER" envDefault:"local"`

	LogMode  string `env:"MATHDRILL_LOG_MODE" envDefault:"development"`
	LogLevel string `env:"MATHDRILL_LOG_LEVEL" envDefault:"warn"`

	// SettingsFile is an optional JSON session settings file.
	SettingsFile string   `env:"MATHDRILL_SETTINGS"`
	SessionType  string   `env:"MATHDRILL_SESSION_TYPE" envDefault:"question_based"`
	Operations   []string `env:"MATHDRILL_OPERATIONS" envSeparator:"," envDefault:"addition,subtraction,multiplication,division"`
	Difficulty   float64  `env:"MATHDRILL_DIFFICULTY" envDefault:"1"`
}

// Load reads dotenv files (".env" when none are named) into the process
// environment, then parses Config from it. Missing dotenv files are
// ignored; variables already set in the environment win.
func Load(dotenvPaths ...string) (Config, error) {
	if err := godotenv.Load(dotenvPaths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}
	return ParseEnv()
}

// ParseEnv loads configuration from environment variables only.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
