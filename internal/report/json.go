package report

import (
	"encoding/json"
	"io"

	"github.com/JMR-dev/namemigrate/internal/model"
)

// JSONWriter outputs reports in JSON format for tool integration.
type JSONWriter struct {
	baseWriter

	// version is the namemigrate version recorded in the output.
	version string

	// indent enables pretty-printed JSON output.
	indent bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
	}
}

// WithVersion records the tool version in the output.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// JSONReport wraps a MigrationReport with output metadata.
type JSONReport struct {
	// Version is the namemigrate version that produced the report.
	Version string `json:"version,omitempty"`

	// Status is the one-line outcome, as printed by SimpleWriter.
	Status string `json:"status"`

	// DurationMS is the run time in milliseconds.
	DurationMS int64 `json:"duration_ms"`

	// Report is the full run report.
	Report *model.MigrationReport `json:"report"`
}

// Write outputs the report wrapped with metadata.
func (w *JSONWriter) Write(report *model.MigrationReport) (int, error) {
	wrapped := &JSONReport{
		Version:    w.version,
		Status:     status(report),
		DurationMS: report.Duration().Milliseconds(),
		Report:     report,
	}

	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(wrapped, "", "  ")
	} else {
		data, err = json.Marshal(wrapped)
	}
	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')
	return w.output.Write(data)
}
