package archive

import (
	"errors"
	"fmt"
)

// Kind classifies archive failures.
type Kind int

const (
	// KindNotFound means the archive file does not exist.
	KindNotFound Kind = iota + 1
	// KindDecode means the archive could not be decompressed or parsed
	// into a flat sequence of names.
	KindDecode
	// KindFormatMismatch means the archive holds an HTML document.
	KindFormatMismatch
)

// String returns the class name used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindDecode:
		return "DecodeError"
	case KindFormatMismatch:
		return "FormatMismatch"
	default:
		return "Unknown"
	}
}

// Sentinel errors matched by *Error through errors.Is.
var (
	// ErrNotFound is matched by errors for missing input files.
	ErrNotFound = errors.New("required file not found")

	// ErrDecode is matched by errors for archives that cannot be decoded.
	ErrDecode = errors.New("cannot decode archive")

	// ErrFormatMismatch is matched by errors for archives holding a web page.
	ErrFormatMismatch = errors.New("archive holds an HTML page instead of serialized data")
)

// Error describes why an archive could not be loaded.
type Error struct {
	// Kind is the failure class.
	Kind Kind

	// Path is the archive path.
	Path string

	// Detail is a short description of what went wrong.
	Detail string

	// PageTitle is the <title> of the HTML page for KindFormatMismatch, if any.
	PageTitle string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Path, e.Detail)
	if e.PageTitle != "" {
		msg += fmt.Sprintf(" (page title %q)", e.PageTitle)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrDecode:
		return e.Kind == KindDecode
	case ErrFormatMismatch:
		return e.Kind == KindFormatMismatch
	}
	return false
}

// Hint returns guidance for fixing the failure.
func (e *Error) Hint() string {
	switch e.Kind {
	case KindNotFound:
		return "Check the file path, or point to the archive with --first-names/--last-names or the config file."
	case KindFormatMismatch:
		return "A web page was downloaded instead of the raw data file. Download the actual file (on GitHub use the 'Raw' button or a release asset), not the HTML page."
	default:
		return "Make sure the file is a gzip-compressed pickle or JSON list of names, not an HTML page. If downloaded from GitHub, use the 'Raw' button or download via releases."
	}
}

func notFound(path string, err error) *Error {
	return &Error{Kind: KindNotFound, Path: path, Detail: "file does not exist", Err: err}
}

func decodeError(path, detail string, err error) *Error {
	return &Error{Kind: KindDecode, Path: path, Detail: detail, Err: err}
}
