package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/JMR-dev/namemigrate/internal/model"
)

// createTestReport creates a successful report with sample data for testing.
func createTestReport() *model.MigrationReport {
	report := model.NewMigrationReport("names.sqlite")
	report.FinishedAt = report.StartedAt.Add(1500 * time.Millisecond)
	report.PerformedSteps = []string{"load_first_names", "load_last_names", "normalize_first_names", "normalize_last_names", "persist"}

	first := report.Stats(model.FirstNames)
	*first = model.ListStats{
		Source: "first_names.pkl.gz", Format: "pickle", Table: "FirstNames",
		Raw: 1300, Skipped: 40, Duplicates: 60, Unique: 1200,
		Persisted: true, Batches: []int{500, 500, 200}, Digest: "aa11",
	}
	last := report.Stats(model.LastNames)
	*last = model.ListStats{
		Source: "last_names.pkl.gz", Format: "pickle", Table: "LastNames",
		Raw: 3, Unique: 3, Persisted: true, Batches: []int{3}, Digest: "bb22",
	}
	return report
}

// createFailedReport creates a report stopped in the persist phase after the
// first table was committed.
func createFailedReport() *model.MigrationReport {
	report := createTestReport()
	last := report.Stats(model.LastNames)
	last.Persisted = false
	last.Batches = nil
	last.Digest = ""
	report.Fail(model.PhasePersist, errors.New("insert table LastNames: disk full"))
	return report
}

// TestSimpleWriter tests the human-readable report writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes summary and lists", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := NewSimpleWriter(&buf).Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("expected %d bytes reported, got %d", buf.Len(), n)
		}

		output := buf.String()
		for _, want := range []string{
			"Migration Summary",
			"names.sqlite",
			"one transaction per table",
			"success",
			"first names",
			"first_names.pkl.gz (pickle)",
			"FirstNames",
			"yes (batches: 500, 500, 200)",
			"last names",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q:\n%s", want, output)
			}
		}
		if strings.Contains(output, "Run ID:") {
			t.Error("run ID should only be shown in verbose mode")
		}
	})

	t.Run("verbose adds run metadata", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		report := createTestReport()
		if _, err := NewSimpleWriter(&buf, WithVerbose(true)).Write(report); err != nil {
			t.Fatal(err)
		}
		output := buf.String()
		if !strings.Contains(output, report.RunID) {
			t.Error("expected run ID in verbose output")
		}
		if !strings.Contains(output, "normalize_last_names") {
			t.Error("expected performed steps in verbose output")
		}
	})

	t.Run("failed run shows phase and unpersisted table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createFailedReport()); err != nil {
			t.Fatal(err)
		}
		output := buf.String()
		if !strings.Contains(output, "failed in persist phase: insert table LastNames: disk full") {
			t.Errorf("expected failure status:\n%s", output)
		}
		if !strings.Contains(output, "no\n") {
			t.Errorf("expected unpersisted list:\n%s", output)
		}
	})

	t.Run("atomic mode", func(t *testing.T) {
		t.Parallel()

		report := createTestReport()
		report.Atomic = true
		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(report); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "single transaction") {
			t.Error("expected single transaction mode")
		}
	})
}

// TestJSONWriter tests the JSON report writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes parseable JSON with metadata", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithPrettyPrint(), WithVersion("v1.2.3"))
		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var parsed struct {
			Version    string `json:"version"`
			Status     string `json:"status"`
			DurationMS int64  `json:"duration_ms"`
			Report     struct {
				Database string                     `json:"database"`
				Lists    map[string]model.ListStats `json:"lists"`
			} `json:"report"`
		}
		if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
		}

		if parsed.Version != "v1.2.3" || parsed.Status != "success" {
			t.Errorf("unexpected metadata: %+v", parsed)
		}
		if parsed.DurationMS != 1500 {
			t.Errorf("expected duration 1500ms, got %d", parsed.DurationMS)
		}
		first, ok := parsed.Report.Lists["first_names"]
		if !ok {
			t.Fatalf("expected first_names key, got %v", parsed.Report.Lists)
		}
		if first.Unique != 1200 || len(first.Batches) != 3 {
			t.Errorf("unexpected first-name stats: %+v", first)
		}
		if !strings.Contains(buf.String(), "\n  ") {
			t.Error("expected indented output")
		}
	})

	t.Run("failed report carries phase and error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createFailedReport()); err != nil {
			t.Fatal(err)
		}

		var parsed map[string]any
		if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
			t.Fatal(err)
		}
		inner := parsed["report"].(map[string]any)
		if inner["failed_phase"] != "persist" {
			t.Errorf("expected failed_phase persist, got %v", inner["failed_phase"])
		}
		if inner["error"] != "insert table LastNames: disk full" {
			t.Errorf("unexpected error field %v", inner["error"])
		}
		if out := buf.String(); !strings.HasSuffix(out, "}\n") {
			t.Error("expected a single trailing newline")
		}
	})
}

// TestMarkdownWriter tests the Markdown report writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes tables, charts and digests", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		output := buf.String()
		for _, want := range []string{
			"# Name Migration Report",
			"## Lists",
			"1200",
			"first_names.pkl.gz",
			"500, 500, 200",
			"```mermaid",
			"pie",
			"FirstNames: `aa11`",
			"[!TIP]",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q:\n%s", want, output)
			}
		}
	})

	t.Run("failed run raises a caution alert", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createFailedReport()); err != nil {
			t.Fatal(err)
		}
		output := buf.String()
		if !strings.Contains(output, "[!CAUTION]") {
			t.Errorf("expected caution alert:\n%s", output)
		}
		if strings.Contains(output, "LastNames: `") {
			t.Error("unpersisted table must not list a digest")
		}
	})

	t.Run("empty report", func(t *testing.T) {
		t.Parallel()

		report := model.NewMigrationReport("names.sqlite")
		report.Fail(model.PhaseLoad, errors.New("missing"))
		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(report); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "No archive was loaded.") {
			t.Errorf("expected empty lists message:\n%s", buf.String())
		}
	})
}

// TestMultiWriter tests writing to several writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var text, js bytes.Buffer
	mw := NewMultiWriter(NewSimpleWriter(&text), NewJSONWriter(&js))

	n, err := mw.Write(createTestReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != text.Len()+js.Len() {
		t.Errorf("expected %d total bytes, got %d", text.Len()+js.Len(), n)
	}
	if text.Len() == 0 || js.Len() == 0 {
		t.Error("expected both writers to receive the report")
	}
}

// TestFormatBatches tests batch rendering.
func TestFormatBatches(t *testing.T) {
	t.Parallel()

	tests := map[string][]int{
		"-":             nil,
		"7":             {7},
		"500, 500, 200": {500, 500, 200},
	}
	for want, in := range tests {
		if got := formatBatches(in); got != want {
			t.Errorf("formatBatches(%v) = %q, want %q", in, got, want)
		}
	}
}
