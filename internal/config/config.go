package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/JMR-dev/namemigrate/internal/archive"
	"github.com/JMR-dev/namemigrate/internal/database"
	"github.com/JMR-dev/namemigrate/internal/log"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "namemigrate"

	// DefaultFirstNamesFile is the archive holding the first-name list.
	DefaultFirstNamesFile = "first_names.pkl.gz"

	// DefaultLastNamesFile is the archive holding the last-name list.
	DefaultLastNamesFile = "last_names.pkl.gz"

	// DefaultDBFile is the SQLite database written by a migration.
	DefaultDBFile = "names.sqlite"

	// DefaultBatchSize is the number of rows per INSERT statement.
	// 500 rows keep statements well below SQLite's host parameter limit.
	DefaultBatchSize = database.DefaultBatchSize

	// DefaultFirstNamesTable receives the first names.
	DefaultFirstNamesTable = "FirstNames"

	// DefaultLastNamesTable receives the last names.
	DefaultLastNamesTable = "LastNames"

	// DefaultFormat lets the loader detect the payload format.
	DefaultFormat = string(archive.FormatAuto)

	// DefaultLogFormat writes logfmt-style text logs.
	DefaultLogFormat = log.FormatText
)

// Config holds all configuration options for a migration run.
// It is populated from defaults, the config file, the environment and CLI
// flags, and passed explicitly into the pipeline.
type Config struct {
	// FirstNamesFile is the gzip archive holding the first-name list.
	FirstNamesFile string

	// LastNamesFile is the gzip archive holding the last-name list.
	LastNamesFile string

	// DBFile is the SQLite database file. It is created on first write.
	DBFile string

	// BatchSize is the maximum number of rows per INSERT statement.
	// It never changes what ends up in the tables.
	BatchSize int

	// FirstNamesTable is the table replaced with the first names.
	FirstNamesTable string

	// LastNamesTable is the table replaced with the last names.
	LastNamesTable string

	// Format is the archive payload format: auto, pickle or json.
	Format string

	// Atomic replaces both tables in a single transaction.
	// When false each table is committed on its own, so a failure while
	// writing the second table leaves the first one replaced.
	Atomic bool

	// Verbose enables detailed log output using slog.LevelDebug.
	Verbose bool

	// ShowNames disables masking of name values in log output.
	ShowNames bool

	// LogFormat is the log encoding on stderr: text or json.
	LogFormat string

	// JSONReport writes the run report as JSON.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport writes the run report as Markdown.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When empty, the report is written to stdout.
	ReportFile string

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		FirstNamesFile:  DefaultFirstNamesFile,
		LastNamesFile:   DefaultLastNamesFile,
		DBFile:          DefaultDBFile,
		BatchSize:       DefaultBatchSize,
		FirstNamesTable: DefaultFirstNamesTable,
		LastNamesTable:  DefaultLastNamesTable,
		Format:          DefaultFormat,
		LogFormat:       DefaultLogFormat,
	}
}

// XDGConfigDir returns the XDG config directory for namemigrate.
// On Linux: ~/.config/namemigrate
// On macOS: ~/Library/Application Support/namemigrate
// On Windows: %APPDATA%\namemigrate
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGConfigFile returns the config file inside XDGConfigDir.
func XDGConfigFile() string {
	return filepath.Join(XDGConfigDir(), "config.yaml")
}

// ArchiveFormat returns Format parsed as an archive.Format.
func (c *Config) ArchiveFormat() (archive.Format, error) {
	f, err := archive.ParseFormat(c.Format)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
	}
	return f, nil
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *Config) Validate() error {
	if c.FirstNamesFile == "" || c.LastNamesFile == "" {
		return ErrNoInputFile
	}
	if filepath.Clean(c.FirstNamesFile) == filepath.Clean(c.LastNamesFile) {
		return fmt.Errorf("%w: %s", ErrSameInputFile, c.FirstNamesFile)
	}
	if c.DBFile == "" {
		return ErrNoDatabase
	}

	if c.BatchSize <= 0 || c.BatchSize > database.MaxBatchSize {
		return fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidBatchSize, c.BatchSize, database.MaxBatchSize)
	}

	for _, table := range []string{c.FirstNamesTable, c.LastNamesTable} {
		if err := database.ValidateTableName(table); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTableName, err)
		}
	}
	// SQLite identifiers are case-insensitive.
	if strings.EqualFold(c.FirstNamesTable, c.LastNamesTable) {
		return fmt.Errorf("%w: %s", ErrSameTable, c.FirstNamesTable)
	}

	if _, err := c.ArchiveFormat(); err != nil {
		return err
	}

	if !log.IsFormat(c.LogFormat) {
		return fmt.Errorf("%w: %q (must be text or json)", ErrInvalidLogFormat, c.LogFormat)
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}
