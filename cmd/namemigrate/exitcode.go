package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/JMR-dev/namemigrate/internal/archive"
	"github.com/JMR-dev/namemigrate/internal/database"
)

// Process exit codes. Each failure class has its own code so scripts can
// tell a missing input from a broken archive or a database problem.
const (
	exitOK             = 0
	exitFailure        = 1
	exitNotFound       = 2
	exitDecode         = 3
	exitFormatMismatch = 4
	exitPersistence    = 5
	exitInterrupted    = 130
)

// reportedError marks an error whose diagnostic was already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// exitCodeFor maps an error to the process exit code.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case errors.Is(err, archive.ErrNotFound), errors.Is(err, database.ErrDatabaseNotFound):
		return exitNotFound
	case errors.Is(err, archive.ErrFormatMismatch):
		return exitFormatMismatch
	case errors.Is(err, archive.ErrDecode):
		return exitDecode
	case errors.Is(err, database.ErrPersistence):
		return exitPersistence
	default:
		return exitFailure
	}
}

// hinter is implemented by errors that carry fixing guidance.
type hinter interface {
	Hint() string
}

// printDiagnostic writes the error class, message and hint to w.
func printDiagnostic(w io.Writer, err error) {
	var aerr *archive.Error
	switch {
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(w, "Interrupted: the migration was cancelled.")
		fmt.Fprintln(w, "Tables committed before the interruption keep their new contents.")
		return
	case errors.As(err, &aerr):
		fmt.Fprintf(w, "%s: %v\n", aerr.Kind, err)
	case errors.Is(err, database.ErrPersistence):
		fmt.Fprintf(w, "PersistenceError: %v\n", err)
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}

	var h hinter
	if errors.As(err, &h) {
		if hint := h.Hint(); hint != "" {
			fmt.Fprintf(w, "Hint: %s\n", hint)
		}
	}
}
