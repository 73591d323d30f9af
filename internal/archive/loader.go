package archive

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/klauspost/compress/gzip"

	"github.com/JMR-dev/namemigrate/internal/model"
)

// sniffSize is the number of leading bytes inspected before decoding.
// It is large enough to reach the <title> of a typical HTML page.
const sniffSize = 4096

// gzipMagic is the two-byte header of every gzip member.
var gzipMagic = []byte{0x1f, 0x8b}

// Payload is the decoded content of an archive.
type Payload struct {
	// Path is the archive path.
	Path string

	// Format is the serialization format that was decoded.
	Format Format

	// Values are the decoded elements in archive order.
	Values []model.RawValue
}

// Loader reads gzip-compressed name archives.
type Loader struct {
	// format selects the decoder; FormatAuto detects it per file.
	format Format

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithFormat forces the serialization format instead of detecting it.
func WithFormat(f Format) Option {
	return func(l *Loader) {
		l.format = f
	}
}

// WithLogger sets a custom logger for the loader.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader. Without options it auto-detects the format.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		format: FormatAuto,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load opens the archive at path, checks that it is not an HTML page and
// decodes it into a flat sequence of values.
//
// Errors are *Error values: KindNotFound when the file is absent,
// KindFormatMismatch when the payload starts with an HTML marker and
// KindDecode for everything else.
func (l *Loader) Load(path string) (*Payload, error) {
	f, err := os.Open(path) //nolint:gosec // Archive path is user configuration
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(path, err)
		}
		return nil, decodeError(path, "cannot open file", err)
	}
	defer f.Close()

	raw := bufio.NewReaderSize(f, sniffSize)
	head, err := raw.Peek(len(gzipMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, decodeError(path, "cannot read file", err)
	}

	// A page saved straight from a browser is not compressed at all.
	if !bytes.Equal(head, gzipMagic) {
		prefix, _ := raw.Peek(sniffSize) //nolint:errcheck // A short file still yields its bytes
		if err := Sniff(path, prefix); err != nil {
			return nil, err
		}
		return nil, decodeError(path, "not a gzip archive", nil)
	}

	zr, err := gzip.NewReader(raw)
	if err != nil {
		return nil, decodeError(path, "cannot decompress archive", err)
	}
	defer zr.Close()

	body := bufio.NewReaderSize(zr, sniffSize)
	prefix, err := body.Peek(sniffSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, decodeError(path, "cannot decompress archive", err)
	}
	if len(prefix) == 0 {
		return nil, decodeError(path, "archive is empty", nil)
	}

	if err := Sniff(path, prefix); err != nil {
		return nil, err
	}

	format := l.format
	if format == FormatAuto {
		format = DetectFormat(prefix)
	}

	l.logger.Debug("decoding archive",
		"path", path,
		"format", format,
	)

	var values []model.RawValue
	switch format {
	case FormatJSON:
		values, err = decodeJSON(body)
	case FormatPickle:
		values, err = decodePickle(body)
	default:
		return nil, decodeError(path, fmt.Sprintf("unsupported format %q", format), nil)
	}
	if err != nil {
		return nil, decodeError(path, "cannot decode "+string(format)+" payload", err)
	}

	return &Payload{
		Path:   path,
		Format: format,
		Values: values,
	}, nil
}

// Load reads the archive at path with a default Loader.
func Load(path string, opts ...Option) (*Payload, error) {
	return NewLoader(opts...).Load(path)
}
