// Package names turns decoded archive values into deduplicated name lists.
package names

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/JMR-dev/namemigrate/internal/model"
)

// Stats counts what Normalize did with its input.
type Stats struct {
	// Raw is the number of input values.
	Raw int

	// Skipped counts values that were null, falsy or blank after trimming.
	Skipped int

	// Duplicates counts values whose normalized form was already kept.
	Duplicates int

	// Unique is the number of names in the result.
	Unique int
}

// Normalizer title-cases names. It is not safe for concurrent use.
type Normalizer struct {
	caser cases.Caser
}

// NewNormalizer creates a Normalizer using language-neutral title casing.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		caser: cases.Title(language.Und),
	}
}

// Name normalizes a single name: surrounding whitespace is removed, the text
// is put in Unicode NFC and every word is title-cased (first letter upper,
// the rest lower). It returns "" for blank input.
func (n *Normalizer) Name(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return n.caser.String(norm.NFC.String(s))
}

// List builds the NameList of kind for table from values.
//
// Values that are not truthy (null, empty text, zero, false) and values that
// are blank after trimming are skipped. Of several values with the same
// normalized form only the first is kept, so "john", "JOHN" and " John "
// yield the single name "John". The result keeps first-occurrence order.
func (n *Normalizer) List(kind model.NameKind, table string, values []model.RawValue) (*model.NameList, Stats) {
	stats := Stats{Raw: len(values)}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))

	for _, v := range values {
		if !v.Truthy() {
			stats.Skipped++
			continue
		}
		name := n.Name(v.Text)
		if name == "" {
			stats.Skipped++
			continue
		}
		if _, ok := seen[name]; ok {
			stats.Duplicates++
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	stats.Unique = len(out)
	return &model.NameList{Kind: kind, Table: table, Names: out}, stats
}

// Normalize is a convenience wrapper around NewNormalizer().List.
func Normalize(kind model.NameKind, table string, values []model.RawValue) (*model.NameList, Stats) {
	return NewNormalizer().List(kind, table, values)
}
