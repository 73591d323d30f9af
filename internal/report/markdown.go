package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/JMR-dev/namemigrate/internal/model"
)

// MarkdownWriter outputs reports in GitHub Flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.MigrationReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeLists(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.MigrationReport) {
	md.H1("Name Migration Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Run ID", "`" + report.RunID + "`"},
			{"Database", "`" + report.Database + "`"},
			{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", report.Duration().Round(time.Millisecond).String()},
			{"Mode", transactionMode(report)},
			{"Status", status(report)},
		},
	})
	md.PlainText("")

	switch {
	case report.Cancelled:
		md.Warningf("The run was cancelled during the %s phase.", report.FailedPhase)
	case !report.Succeeded():
		md.Cautionf("The run failed in the %s phase: %s", report.FailedPhase, report.ErrorMessage)
	default:
		md.Tip("All tables were replaced.")
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeLists(md *markdown.Markdown, report *model.MigrationReport) {
	md.H2("Lists")
	md.PlainText("")

	kinds := presentKinds(report)
	if len(kinds) == 0 {
		md.PlainText("No archive was loaded.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(kinds))
	for _, kind := range kinds {
		s := report.Lists[kind]
		persisted := "no"
		if s.Persisted {
			persisted = "yes"
		}
		rows = append(rows, []string{
			kind.String(),
			"`" + s.Source + "`",
			valueOrDash(s.Table),
			strconv.Itoa(s.Raw),
			strconv.Itoa(s.Skipped),
			strconv.Itoa(s.Duplicates),
			strconv.Itoa(s.Unique),
			persisted,
			formatBatches(s.Batches),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"List", "Source", "Table", "Decoded", "Skipped", "Duplicates", "Unique", "Persisted", "Batches"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, kind := range kinds {
		w.writeBreakdown(md, kind, report.Lists[kind])
	}

	md.H2("Digests")
	md.PlainText("")
	digests := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		if s := report.Lists[kind]; s.Digest != "" {
			digests = append(digests, s.Table+": `"+s.Digest+"`")
		}
	}
	if len(digests) == 0 {
		md.PlainText("No table was persisted.")
	} else {
		md.BulletList(digests...)
	}
	md.PlainText("")
}

// writeBreakdown writes a pie chart of what happened to the decoded values.
func (w *MarkdownWriter) writeBreakdown(md *markdown.Markdown, kind model.NameKind, s *model.ListStats) {
	if s.Raw == 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Decoded "+kind.String()),
		piechart.WithShowData(true),
	)
	if s.Unique > 0 {
		chart.LabelAndIntValue("Unique", uint64(s.Unique))
	}
	if s.Duplicates > 0 {
		chart.LabelAndIntValue("Duplicates", uint64(s.Duplicates))
	}
	if s.Skipped > 0 {
		chart.LabelAndIntValue("Skipped", uint64(s.Skipped))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by namemigrate*")
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
