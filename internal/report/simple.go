package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/JMR-dev/namemigrate/internal/model"
)

// SimpleWriter outputs human-readable text reports for terminal display.
type SimpleWriter struct {
	baseWriter

	// verbose adds run metadata such as the run ID and performed steps.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report as plain text.
func (w *SimpleWriter) Write(report *model.MigrationReport) (int, error) {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("Migration Summary\n")
	sb.WriteString(strings.Repeat("=", 40) + "\n")
	fmt.Fprintf(&sb, "%-12s %s\n", "Database:", report.Database)
	fmt.Fprintf(&sb, "%-12s %s\n", "Mode:", transactionMode(report))
	fmt.Fprintf(&sb, "%-12s %s\n", "Duration:", report.Duration().Round(time.Millisecond))
	fmt.Fprintf(&sb, "%-12s %s\n", "Status:", status(report))
	if w.verbose {
		fmt.Fprintf(&sb, "%-12s %s\n", "Run ID:", report.RunID)
		fmt.Fprintf(&sb, "%-12s %s\n", "Started:", report.StartedAt.Format(time.RFC3339))
		fmt.Fprintf(&sb, "%-12s %s\n", "Steps:", strings.Join(report.PerformedSteps, ", "))
	}

	for _, kind := range presentKinds(report) {
		s := report.Lists[kind]
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "%s\n", kind)
		sb.WriteString(strings.Repeat("-", 40) + "\n")
		source := s.Source
		if s.Format != "" {
			source += " (" + s.Format + ")"
		}
		fmt.Fprintf(&sb, "  %-12s %s\n", "Source:", source)
		if s.Table != "" {
			fmt.Fprintf(&sb, "  %-12s %s\n", "Table:", s.Table)
		}
		fmt.Fprintf(&sb, "  %-12s %d\n", "Decoded:", s.Raw)
		fmt.Fprintf(&sb, "  %-12s %d\n", "Skipped:", s.Skipped)
		fmt.Fprintf(&sb, "  %-12s %d\n", "Duplicates:", s.Duplicates)
		fmt.Fprintf(&sb, "  %-12s %d\n", "Unique:", s.Unique)
		if s.Persisted {
			fmt.Fprintf(&sb, "  %-12s yes (batches: %s)\n", "Persisted:", formatBatches(s.Batches))
			fmt.Fprintf(&sb, "  %-12s %s\n", "Digest:", s.Digest)
		} else {
			fmt.Fprintf(&sb, "  %-12s no\n", "Persisted:")
		}
	}

	return io.WriteString(w.output, sb.String())
}
