package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/JMR-dev/namemigrate/internal/model"
)

const (
	// DefaultBatchSize is the number of rows written per INSERT statement.
	DefaultBatchSize = 500

	// MaxBatchSize is SQLite's default limit on host parameters per statement
	// (SQLITE_MAX_VARIABLE_NUMBER since 3.32). Each row binds one parameter.
	MaxBatchSize = 32766
)

// identPattern matches the table names NameDB accepts.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// NameDB writes name lists into a SQLite database file.
type NameDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// path is the SQLite database file.
	path string

	// opts are the options the database was opened with.
	opts Options
}

// ProgressFunc is called after every batch with the rows written so far.
type ProgressFunc func(table string, written, total int)

// Options configures NameDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL switches the journal to Write-Ahead Logging.
	EnableWAL bool

	// BatchSize is the maximum number of rows per INSERT statement.
	// Zero means DefaultBatchSize.
	BatchSize int

	// Atomic replaces all tables passed to ReplaceTables in one transaction.
	// Otherwise each table is committed on its own.
	Atomic bool

	// Progress, if set, is called after every batch.
	Progress ProgressFunc
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		BatchSize:         DefaultBatchSize,
	}
}

// TableResult describes one committed table replacement.
type TableResult struct {
	// Table is the replaced table.
	Table string

	// Rows is the number of rows written.
	Rows int

	// Batches holds the row count of each INSERT statement.
	Batches []int

	// Digest is the digest of the written names in row order.
	Digest string
}

// TableStats describes the current content of a table.
type TableStats struct {
	// Table is the table name.
	Table string

	// Rows is the row count.
	Rows int

	// Digest is the digest of the names in row order.
	Digest string
}

// Open opens or creates the SQLite database at path.
// If CreateIfNotExists is false and the file doesn't exist, ErrDatabaseNotFound is returned.
func Open(path string, opts Options) (*NameDB, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.BatchSize > MaxBatchSize {
		return nil, fmt.Errorf("batch size %d exceeds the SQLite parameter limit of %d", opts.BatchSize, MaxBatchSize)
	}

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrDatabaseNotFound, path)
		} else if err != nil {
			return nil, persistenceError(OpOpen, path, "", err)
		}
	} else if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, persistenceError(OpOpen, path, "", err)
		}
	}

	// modernc.org/sqlite only honours URI parameters such as mode behind the
	// file: scheme. mode=rw refuses to create a missing file.
	mode := "rw"
	if opts.CreateIfNotExists {
		mode = "rwc"
	}
	dsn := "file:" + filepath.ToSlash(path) + "?mode=" + mode

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, persistenceError(OpOpen, path, "", err)
	}

	// One writer, one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, persistenceError(OpOpen, path, "", err)
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, persistenceError(OpOpen, path, "", fmt.Errorf("enable WAL mode: %w", err))
		}
	}

	return &NameDB{db: db, path: path, opts: opts}, nil
}

// Close closes the database connection.
func (n *NameDB) Close() error {
	return n.db.Close()
}

// Path returns the database file path.
func (n *NameDB) Path() string {
	return n.path
}

// ReplaceTables replaces the table of every list with the list's names.
//
// Without Options.Atomic each table is replaced in its own transaction, in
// argument order: if a later table fails, earlier tables keep their new
// contents and their results are still returned. With Options.Atomic all
// replacements share one transaction and a failure leaves every table as it was.
func (n *NameDB) ReplaceTables(ctx context.Context, lists ...*model.NameList) ([]TableResult, error) {
	if len(lists) == 0 {
		return nil, nil
	}
	for _, list := range lists {
		if err := ValidateTableName(list.Table); err != nil {
			return nil, err
		}
	}

	if !n.opts.Atomic {
		results := make([]TableResult, 0, len(lists))
		for _, list := range lists {
			res, err := n.ReplaceTable(ctx, list)
			if err != nil {
				return results, err
			}
			results = append(results, res)
		}
		return results, nil
	}

	tx, err := n.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, persistenceError(OpReplace, n.path, lists[0].Table, err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback after Commit is a no-op

	results := make([]TableResult, 0, len(lists))
	for _, list := range lists {
		res, err := n.replaceInTx(ctx, tx, list)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	if err := tx.Commit(); err != nil {
		return nil, persistenceError(OpCommit, n.path, lists[len(lists)-1].Table, err)
	}
	return results, nil
}

// ReplaceTable drops list.Table if it exists, recreates it as (name TEXT)
// and inserts list.Names in batches of at most Options.BatchSize rows,
// all inside one transaction.
func (n *NameDB) ReplaceTable(ctx context.Context, list *model.NameList) (TableResult, error) {
	if err := ValidateTableName(list.Table); err != nil {
		return TableResult{}, err
	}

	tx, err := n.db.BeginTx(ctx, nil)
	if err != nil {
		return TableResult{}, persistenceError(OpReplace, n.path, list.Table, err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback after Commit is a no-op

	res, err := n.replaceInTx(ctx, tx, list)
	if err != nil {
		return TableResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return TableResult{}, persistenceError(OpCommit, n.path, list.Table, err)
	}
	return res, nil
}

// replaceInTx performs the drop, create and batched inserts of one table.
func (n *NameDB) replaceInTx(ctx context.Context, tx *sql.Tx, list *model.NameList) (TableResult, error) {
	table := quoteIdent(list.Table)

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
		return TableResult{}, persistenceError(OpReplace, n.path, list.Table, err)
	}
	if _, err := tx.ExecContext(ctx, "CREATE TABLE "+table+" (name TEXT)"); err != nil {
		return TableResult{}, persistenceError(OpReplace, n.path, list.Table, err)
	}

	res := TableResult{
		Table:   list.Table,
		Batches: make([]int, 0, (len(list.Names)+n.opts.BatchSize-1)/n.opts.BatchSize),
		Digest:  Digest(list.Names),
	}

	// Full batches reuse one prepared statement; only the tail differs.
	var full *sql.Stmt
	defer func() {
		if full != nil {
			_ = full.Close()
		}
	}()

	total := len(list.Names)
	for start := 0; start < total; start += n.opts.BatchSize {
		end := min(start+n.opts.BatchSize, total)
		chunk := list.Names[start:end]

		args := make([]any, len(chunk))
		for i, name := range chunk {
			args[i] = name
		}

		var err error
		if len(chunk) == n.opts.BatchSize {
			if full == nil {
				full, err = tx.PrepareContext(ctx, insertStatement(table, n.opts.BatchSize))
				if err != nil {
					return TableResult{}, persistenceError(OpInsert, n.path, list.Table, err)
				}
			}
			_, err = full.ExecContext(ctx, args...)
		} else {
			_, err = tx.ExecContext(ctx, insertStatement(table, len(chunk)), args...)
		}
		if err != nil {
			return TableResult{}, persistenceError(OpInsert, n.path, list.Table, err)
		}

		res.Batches = append(res.Batches, len(chunk))
		res.Rows = end
		if n.opts.Progress != nil {
			n.opts.Progress(list.Table, end, total)
		}
	}

	return res, nil
}

// TableExists reports whether table exists.
func (n *NameDB) TableExists(ctx context.Context, table string) (bool, error) {
	var count int
	err := n.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check table %s: %w", table, err)
	}
	return count > 0, nil
}

// Names returns the names stored in table in insertion order.
func (n *NameDB) Names(ctx context.Context, table string) ([]string, error) {
	if err := ValidateTableName(table); err != nil {
		return nil, err
	}

	rows, err := n.db.QueryContext(ctx, "SELECT name FROM "+quoteIdent(table)+" ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", table, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name sql.NullString
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table %s: %w", table, err)
		}
		names = append(names, name.String)
	}
	return names, rows.Err()
}

// TableStats returns the row count and digest of table.
func (n *NameDB) TableStats(ctx context.Context, table string) (TableStats, error) {
	if err := ValidateTableName(table); err != nil {
		return TableStats{}, err
	}

	exists, err := n.TableExists(ctx, table)
	if err != nil {
		return TableStats{}, err
	}
	if !exists {
		return TableStats{}, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}

	names, err := n.Names(ctx, table)
	if err != nil {
		return TableStats{}, err
	}
	return TableStats{Table: table, Rows: len(names), Digest: Digest(names)}, nil
}

// ValidateTableName checks that name is a plain SQL identifier.
func ValidateTableName(name string) error {
	if !identPattern.MatchString(name) {
		return fmt.Errorf("%w: %q (letters, digits and underscores only, not starting with a digit)", ErrInvalidTableName, name)
	}
	if strings.HasPrefix(strings.ToLower(name), "sqlite_") {
		return fmt.Errorf("%w: %q (the sqlite_ prefix is reserved)", ErrInvalidTableName, name)
	}
	return nil
}

// quoteIdent quotes a validated identifier.
func quoteIdent(name string) string {
	return `"` + name + `"`
}

// insertStatement builds a multi-row INSERT for rows values.
func insertStatement(quotedTable string, rows int) string {
	var sb strings.Builder
	sb.Grow(len(quotedTable) + 32 + rows*4)
	sb.WriteString("INSERT INTO ")
	sb.WriteString(quotedTable)
	sb.WriteString(" (name) VALUES ")
	for i := 0; i < rows; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString("(?)")
	}
	return sb.String()
}
