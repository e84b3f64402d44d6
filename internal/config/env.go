package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that provide defaults for CLI flags.
const (
	EnvDB       = "CANDY_DB"
	EnvSSHAddr  = "CANDY_SSH_ADDR"
	EnvLogLevel = "CANDY_LOG_LEVEL"
	EnvConfig   = "CANDY_CONFIG"
)

// LoadEnv reads KEY=value pairs from the given .env files (./.env when none
// are given) into the process environment. Variables that are already set
// win. Missing files are not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// EnvOr returns the value of key, or fallback when it is unset or empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
