package archive

import (
	"errors"
	"testing"
)

// TestLooksLikeHTML tests HTML marker detection.
func TestLooksLikeHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		want   bool
	}{
		{name: "doctype", prefix: "<!DOCTYPE html><html>", want: true},
		{name: "html tag", prefix: "<html lang=\"en\">", want: true},
		{name: "pickle protocol header", prefix: "\x80\x04\x95", want: false},
		{name: "json array", prefix: `["john"]`, want: false},
		{name: "lowercase doctype", prefix: "<!doctype html>", want: false},
		{name: "uppercase html tag", prefix: "<HTML>", want: false},
		{name: "leading whitespace", prefix: "  <!DOCTYPE html>", want: false},
		{name: "empty", prefix: "", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := LooksLikeHTML([]byte(tt.prefix)); got != tt.want {
				t.Errorf("LooksLikeHTML(%q) = %v, want %v", tt.prefix, got, tt.want)
			}
		})
	}
}

// TestSniff tests the validator's error value.
func TestSniff(t *testing.T) {
	t.Parallel()

	t.Run("accepts data payloads", func(t *testing.T) {
		t.Parallel()

		if err := Sniff("names.pkl.gz", []byte("\x80\x02]q\x00")); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("rejects HTML with title", func(t *testing.T) {
		t.Parallel()

		err := Sniff("names.pkl.gz", []byte("<!DOCTYPE html><html><head><title>\n  names at main  \n</title>"))

		var archiveErr *Error
		if !errors.As(err, &archiveErr) {
			t.Fatalf("expected *Error, got %v", err)
		}
		if archiveErr.Kind != KindFormatMismatch {
			t.Errorf("expected KindFormatMismatch, got %v", archiveErr.Kind)
		}
		if archiveErr.PageTitle != "names at main" {
			t.Errorf("expected title %q, got %q", "names at main", archiveErr.PageTitle)
		}
	})

	t.Run("rejects HTML without title", func(t *testing.T) {
		t.Parallel()

		err := Sniff("names.pkl.gz", []byte("<html><body>"))
		if !errors.Is(err, ErrFormatMismatch) {
			t.Fatalf("expected ErrFormatMismatch, got %v", err)
		}

		var archiveErr *Error
		if errors.As(err, &archiveErr) && archiveErr.PageTitle != "" {
			t.Errorf("expected empty title, got %q", archiveErr.PageTitle)
		}
	})
}

// TestDetectFormat tests format detection on payload prefixes.
func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prefix string
		want   Format
	}{
		{prefix: `["a"]`, want: FormatJSON},
		{prefix: "\n  [", want: FormatJSON},
		{prefix: "\x80\x02]", want: FormatPickle},
		{prefix: "(lp0\n", want: FormatPickle},
		{prefix: "", want: FormatPickle},
	}

	for _, tt := range tests {
		if got := DetectFormat([]byte(tt.prefix)); got != tt.want {
			t.Errorf("DetectFormat(%q) = %q, want %q", tt.prefix, got, tt.want)
		}
	}
}

// TestErrorKindString tests the class names used in diagnostics.
func TestErrorKindString(t *testing.T) {
	t.Parallel()

	tests := map[Kind]string{
		KindNotFound:       "NotFound",
		KindDecode:         "DecodeError",
		KindFormatMismatch: "FormatMismatch",
		Kind(0):            "Unknown",
	}
	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(kind), got, want)
		}
	}
}
