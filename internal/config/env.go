package config

import (
	"errors"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override file values.
const (
	EnvReadme  = "JOURNALSITE_README"
	EnvDaysDir = "JOURNALSITE_DAYS_DIR"
	EnvOutput  = "JOURNALSITE_OUTPUT"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFile loads the first of .env/.env.local that exists. Existing process
// variables are never overwritten.
func loadEnvFile() error {
	for _, envPath := range envFiles {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return err
		}
		slog.Debug("Loaded environment variables", slog.String("file", envPath))
		return nil
	}
	return errors.New("no .env file found")
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvReadme); v != "" {
		cfg.Readme = v
	}
	if v := os.Getenv(EnvDaysDir); v != "" {
		cfg.DaysDir = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		cfg.Output = v
	}
}
