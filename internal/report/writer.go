package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/JMR-dev/namemigrate/internal/model"
)

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.MigrationReport) (int, error)
}

// MultiWriter writes to multiple Writers in order.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *model.MigrationReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// status summarizes the outcome of a run in one line.
func status(report *model.MigrationReport) string {
	switch {
	case report.Cancelled:
		return fmt.Sprintf("cancelled during %s phase", report.FailedPhase)
	case report.Error != nil || report.ErrorMessage != "":
		return fmt.Sprintf("failed in %s phase: %s", report.FailedPhase, report.ErrorMessage)
	default:
		return "success"
	}
}

// transactionMode describes how tables were committed.
func transactionMode(report *model.MigrationReport) string {
	if report.Atomic {
		return "single transaction"
	}
	return "one transaction per table"
}

// presentKinds returns the kinds with statistics, in migration order.
func presentKinds(report *model.MigrationReport) []model.NameKind {
	kinds := make([]model.NameKind, 0, len(report.Lists))
	for _, k := range model.Kinds() {
		if _, ok := report.Lists[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// formatBatches renders batch sizes compactly, e.g. "500, 500, 200".
func formatBatches(batches []int) string {
	if len(batches) == 0 {
		return "-"
	}
	parts := make([]string, len(batches))
	for i, b := range batches {
		parts[i] = strconv.Itoa(b)
	}
	return strings.Join(parts, ", ")
}
