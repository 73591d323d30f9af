package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultDotEnvFile is read from the working directory if present.
const DefaultDotEnvFile = ".env"

// Environment variables read by ApplyEnv.
const (
	EnvFirstNames = "NAMEMIGRATE_FIRST_NAMES"
	EnvLastNames  = "NAMEMIGRATE_LAST_NAMES"
	EnvDatabase   = "NAMEMIGRATE_DATABASE"
	EnvBatchSize  = "NAMEMIGRATE_BATCH_SIZE"
	EnvFirstTable = "NAMEMIGRATE_FIRST_TABLE"
	EnvLastTable  = "NAMEMIGRATE_LAST_TABLE"
	EnvFormat     = "NAMEMIGRATE_FORMAT"
	EnvAtomic     = "NAMEMIGRATE_ATOMIC"
	EnvShowNames  = "NAMEMIGRATE_SHOW_NAMES"
	EnvLogFormat  = "NAMEMIGRATE_LOG_FORMAT"
)

// LookupFunc looks up an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadDotEnv loads variables from a .env file into the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv copies NAMEMIGRATE_* variables found by lookup into cfg.
// Empty variables are ignored.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str(EnvFirstNames, &cfg.FirstNamesFile)
	str(EnvLastNames, &cfg.LastNamesFile)
	str(EnvDatabase, &cfg.DBFile)
	str(EnvFirstTable, &cfg.FirstNamesTable)
	str(EnvLastTable, &cfg.LastNamesTable)
	str(EnvFormat, &cfg.Format)
	str(EnvLogFormat, &cfg.LogFormat)

	if v, ok := lookup(EnvBatchSize); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidEnv, EnvBatchSize, v)
		}
		cfg.BatchSize = n
	}

	for key, dst := range map[string]*bool{EnvAtomic: &cfg.Atomic, EnvShowNames: &cfg.ShowNames} {
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidEnv, key, v)
		}
		*dst = b
	}
	return nil
}
