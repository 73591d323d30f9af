package names

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JMR-dev/namemigrate/internal/model"
)

func texts(ss ...string) []model.RawValue {
	values := make([]model.RawValue, len(ss))
	for i, s := range ss {
		values[i] = model.TextValue(s)
	}
	return values
}

// TestNormalizerList tests normalization and deduplication of name lists.
func TestNormalizerList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		values    []model.RawValue
		want      []string
		wantStats Stats
	}{
		{
			name:      "case variants collapse to one record",
			values:    texts("john", "JOHN", " John "),
			want:      []string{"John"},
			wantStats: Stats{Raw: 3, Duplicates: 2, Unique: 1},
		},
		{
			name:      "empty and null values are dropped",
			values:    []model.RawValue{model.TextValue(""), model.NullValue(), model.TextValue("smith")},
			want:      []string{"Smith"},
			wantStats: Stats{Raw: 3, Skipped: 2, Unique: 1},
		},
		{
			name:      "whitespace-only values are dropped",
			values:    texts("   ", "\t\n", "lee"),
			want:      []string{"Lee"},
			wantStats: Stats{Raw: 3, Skipped: 2, Unique: 1},
		},
		{
			name:      "every word is title-cased",
			values:    texts("mary ann", "VAN DER BERG", "mary-jane"),
			want:      []string{"Mary Ann", "Van Der Berg", "Mary-Jane"},
			wantStats: Stats{Raw: 3, Unique: 3},
		},
		{
			name:      "first occurrence order is kept",
			values:    texts("zoe", "adam", "ZOE", "bob", "Adam"),
			want:      []string{"Zoe", "Adam", "Bob"},
			wantStats: Stats{Raw: 5, Duplicates: 2, Unique: 3},
		},
		{
			name: "falsy scalars are dropped and truthy ones stringified",
			values: []model.RawValue{
				model.NumberValue("0", true),
				model.BoolValue(false),
				model.NumberValue("42", false),
				model.BoolValue(true),
			},
			want:      []string{"42", "True"},
			wantStats: Stats{Raw: 4, Skipped: 2, Unique: 2},
		},
		{
			name:      "non-ASCII names",
			values:    texts("ÉLODIE", "élodie", "øystein"),
			want:      []string{"Élodie", "Øystein"},
			wantStats: Stats{Raw: 3, Duplicates: 1, Unique: 2},
		},
		{
			name:      "decomposed and composed forms are the same name",
			values:    texts("Jose\u0301", "Jos\u00e9"),
			want:      []string{"Jos\u00e9"},
			wantStats: Stats{Raw: 2, Duplicates: 1, Unique: 1},
		},
		{
			name:      "empty input",
			values:    nil,
			want:      []string{},
			wantStats: Stats{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			list, stats := NewNormalizer().List(model.FirstNames, "FirstNames", tt.values)

			if diff := cmp.Diff(tt.want, list.Names); diff != "" {
				t.Errorf("names mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantStats, stats); diff != "" {
				t.Errorf("stats mismatch (-want +got):\n%s", diff)
			}
			if list.Kind != model.FirstNames {
				t.Errorf("expected kind %v, got %v", model.FirstNames, list.Kind)
			}
			if list.Table != "FirstNames" {
				t.Errorf("expected table FirstNames, got %q", list.Table)
			}
		})
	}
}

// TestNormalizeIsStable tests that equal input gives identical output.
func TestNormalizeIsStable(t *testing.T) {
	t.Parallel()

	values := texts("b", "a", "B", "c", " a")
	first, _ := Normalize(model.LastNames, "LastNames", values)
	second, _ := Normalize(model.LastNames, "LastNames", values)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("normalization is not deterministic (-first +second):\n%s", diff)
	}
}

// TestNormalizerName tests single-name normalization.
func TestNormalizerName(t *testing.T) {
	t.Parallel()

	n := NewNormalizer()
	tests := map[string]string{
		"  alice  ":   "Alice",
		"BOB":         "Bob",
		"":            "",
		" \t ":        "",
		"de la cruz":  "De La Cruz",
		"smith-jones": "Smith-Jones",
		// Letters after an apostrophe stay lower case.
		"o'neil":   "O'neil",
		"O'NEIL":   "O'neil",
		"d'angelo": "D'angelo",
	}
	for input, want := range tests {
		if got := n.Name(input); got != want {
			t.Errorf("Name(%q) = %q, want %q", input, got, want)
		}
	}
}
