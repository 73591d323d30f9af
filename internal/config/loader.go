package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".namemigrate"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .namemigrate configuration file.
// Pointer fields distinguish "not set" from zero values, so a file that
// only names the database leaves every other default in place.
type File struct {
	FirstNames *string `yaml:"first_names,omitempty"`
	LastNames  *string `yaml:"last_names,omitempty"`
	Database   *string `yaml:"database,omitempty"`
	BatchSize  *int    `yaml:"batch_size,omitempty"`
	Format     *string `yaml:"format,omitempty"`
	Atomic     *bool   `yaml:"atomic,omitempty"`
	LogFormat  *string `yaml:"log_format,omitempty"`

	Tables struct {
		FirstNames *string `yaml:"first_names,omitempty"`
		LastNames  *string `yaml:"last_names,omitempty"`
	} `yaml:"tables,omitempty"`
}

// LoadConfigFile loads a configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
// Unknown keys are rejected so typos do not pass silently.
func LoadConfigFile(path string) (*File, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}
	defer f.Close()

	var cf File
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cf); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &cf, nil
}

// Apply copies every value set in the file into cfg.
// Relative input and database paths are resolved against baseDir, the
// directory holding the configuration file.
func (cf *File) Apply(cfg *Config, baseDir string) {
	setPath := func(dst *string, src *string) {
		if src == nil {
			return
		}
		p := *src
		if p != "" && !filepath.IsAbs(p) && baseDir != "" {
			p = filepath.Join(baseDir, p)
		}
		*dst = p
	}
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	setPath(&cfg.FirstNamesFile, cf.FirstNames)
	setPath(&cfg.LastNamesFile, cf.LastNames)
	setPath(&cfg.DBFile, cf.Database)
	setString(&cfg.Format, cf.Format)
	setString(&cfg.LogFormat, cf.LogFormat)
	setString(&cfg.FirstNamesTable, cf.Tables.FirstNames)
	setString(&cfg.LastNamesTable, cf.Tables.LastNames)
	if cf.BatchSize != nil {
		cfg.BatchSize = *cf.BatchSize
	}
	if cf.Atomic != nil {
		cfg.Atomic = *cf.Atomic
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .namemigrate in the current directory
// 3. Look for config.yaml in the XDG config directory
// 4. Look for .namemigrate in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, XDGConfigFile())
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

// Load applies the configuration file and the environment to cfg.
// An explicitly requested file that is missing is an error; a missing
// file in the default locations is not. It returns the file used, if any.
func Load(cfg *Config) (string, error) {
	path := FindConfigFile(cfg.ConfigFilePath)
	if path == "" && cfg.ConfigFilePath != "" {
		return "", ErrConfigNotFound
	}

	if path != "" {
		cf, err := LoadConfigFile(path)
		if err != nil {
			return "", err
		}
		cf.Apply(cfg, filepath.Dir(path))
	}

	if err := LoadDotEnv(DefaultDotEnvFile); err != nil {
		return path, err
	}
	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		return path, err
	}
	return path, nil
}
