package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() so callers can use
// errors.Is() to tell configuration problems apart from run failures.
var (
	// ErrNoInputFile is returned when an input archive path is empty.
	ErrNoInputFile = errors.New("no input file specified: set both the first-name and last-name archives")

	// ErrSameInputFile is returned when both categories point to the same archive.
	ErrSameInputFile = errors.New("the first-name and last-name archives must be different files")

	// ErrNoDatabase is returned when the database path is empty.
	ErrNoDatabase = errors.New("no database file specified")

	// ErrInvalidBatchSize is returned when the batch size is not positive
	// or exceeds the SQLite parameter limit.
	ErrInvalidBatchSize = errors.New("invalid batch size")

	// ErrInvalidTableName is returned when a table name is not a plain SQL identifier.
	ErrInvalidTableName = errors.New("invalid table name")

	// ErrSameTable is returned when both categories would be written to one table.
	ErrSameTable = errors.New("the first-name and last-name tables must be different")

	// ErrInvalidFormat is returned for an unknown archive format.
	ErrInvalidFormat = errors.New("invalid archive format: must be auto, pickle or json")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidLogFormat is returned when the log format is not text or json.
	ErrInvalidLogFormat = errors.New("invalid log format")

	// ErrInvalidEnv is returned when a NAMEMIGRATE_* variable cannot be parsed.
	ErrInvalidEnv = errors.New("invalid environment variable")
)
