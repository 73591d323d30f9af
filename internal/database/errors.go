package database

import (
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrPersistence is matched by every *PersistenceError.
	ErrPersistence = errors.New("database write failed")

	// ErrDatabaseNotFound is returned by Open when the file is missing and
	// CreateIfNotExists is false.
	ErrDatabaseNotFound = errors.New("database not found")

	// ErrInvalidTableName is returned for table names that are not plain SQL identifiers.
	ErrInvalidTableName = errors.New("invalid table name")

	// ErrTableNotFound is returned by TableStats for a table that does not exist.
	ErrTableNotFound = errors.New("table not found")
)

// Op is the database operation a PersistenceError happened in.
type Op string

const (
	// OpOpen is connecting to the database file.
	OpOpen Op = "open"
	// OpReplace is dropping and recreating a table.
	OpReplace Op = "replace"
	// OpInsert is a batched INSERT.
	OpInsert Op = "insert"
	// OpCommit is committing a table replacement.
	OpCommit Op = "commit"
)

// PersistenceError reports a failed database operation.
type PersistenceError struct {
	// Op is the failed operation.
	Op Op

	// Path is the database file.
	Path string

	// Table is the table being written, empty for OpOpen.
	Table string

	// Err is the driver error.
	Err error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s table %s: %v", e.Op, e.Table, e.Err)
}

// Unwrap returns the driver error.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is matches ErrPersistence.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// Constraint reports whether SQLite rejected the write with a constraint
// violation (UNIQUE, PRIMARY KEY, NOT NULL, CHECK).
func (e *PersistenceError) Constraint() bool {
	var se *sqlite.Error
	if !errors.As(e.Err, &se) {
		return false
	}
	// Extended result codes carry the primary code in the low byte.
	return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}

// Hint returns guidance for fixing the failure.
func (e *PersistenceError) Hint() string {
	switch {
	case e.Constraint():
		return "The table rejected rows with a constraint violation. If it still has a PRIMARY KEY or UNIQUE constraint from an earlier schema, check the target schema or remove the table before migrating."
	case e.Op == OpOpen:
		return "Check that the database path is writable and not locked by another process."
	default:
		return "Check the target schema and that no other process is writing to the database. Tables committed before this failure keep their new contents."
	}
}

func persistenceError(op Op, path, table string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Path: path, Table: table, Err: err}
}
