// Package report writes the result of a migration run.
//
// This package contains writers for different output formats:
//   - SimpleWriter: human-readable text for terminal display
//   - JSONWriter: structured JSON for tool integration
//   - MarkdownWriter: GitHub Flavored Markdown for sharing
//
// Writers implement the Writer interface and can be combined with MultiWriter.
// Reports carry counts, digests and table names, never the names themselves.
package report
