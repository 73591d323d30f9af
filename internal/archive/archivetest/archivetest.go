// Package archivetest builds name archives for tests.
package archivetest

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
)

// Pickle opcodes used by EncodePickle (protocol 2).
const (
	opProto      = 0x80
	opEmptyList  = ']'
	opEmptyDict  = '}'
	opMark       = '('
	opAppends    = 'e'
	opTuple      = 't'
	opStop       = '.'
	opNone       = 'N'
	opNewTrue    = 0x88
	opNewFalse   = 0x89
	opBinInt1    = 'K'
	opBinInt     = 'J'
	opBinFloat   = 'G'
	opBinUnicode = 'X'
)

// Dict stands for an empty Python dict when passed to EncodePickle.
type Dict struct{}

// Tuple wraps items that EncodePickle writes as a Python tuple.
type Tuple []any

// EncodePickle serializes v with pickle protocol 2. v may be a []any (list),
// a Tuple or a Dict; list and tuple elements may be nil, string, bool, int,
// float64 or an empty []any.
func EncodePickle(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(opProto)
	buf.WriteByte(2)
	if err := writePickle(&buf, v); err != nil {
		return nil, err
	}
	buf.WriteByte(opStop)
	return buf.Bytes(), nil
}

func writePickle(buf *bytes.Buffer, v any) error {
	switch x := v.(type) {
	case nil:
		buf.WriteByte(opNone)
	case string:
		buf.WriteByte(opBinUnicode)
		_ = binary.Write(buf, binary.LittleEndian, uint32(len(x))) //nolint:errcheck,gosec // bytes.Buffer writes never fail
		buf.WriteString(x)
	case bool:
		if x {
			buf.WriteByte(opNewTrue)
		} else {
			buf.WriteByte(opNewFalse)
		}
	case int:
		if x >= 0 && x < 256 {
			buf.WriteByte(opBinInt1)
			buf.WriteByte(byte(x))
			return nil
		}
		if x < math.MinInt32 || x > math.MaxInt32 {
			return fmt.Errorf("int %d out of range", x)
		}
		buf.WriteByte(opBinInt)
		_ = binary.Write(buf, binary.LittleEndian, int32(x)) //nolint:errcheck,gosec // bytes.Buffer writes never fail
	case float64:
		buf.WriteByte(opBinFloat)
		_ = binary.Write(buf, binary.BigEndian, x) //nolint:errcheck // bytes.Buffer writes never fail
	case Dict:
		buf.WriteByte(opEmptyDict)
	case Tuple:
		buf.WriteByte(opMark)
		for _, item := range x {
			if err := writePickle(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(opTuple)
	case []any:
		buf.WriteByte(opEmptyList)
		if len(x) == 0 {
			return nil
		}
		buf.WriteByte(opMark)
		for _, item := range x {
			if err := writePickle(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(opAppends)
	default:
		return fmt.Errorf("unsupported pickle value %T", v)
	}
	return nil
}

// Gzip compresses data.
func Gzip(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("failed to compress fixture: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to compress fixture: %v", err)
	}
	return buf.Bytes()
}

// WriteFile writes data to name inside dir and returns the full path.
func WriteFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

// WritePickle writes a gzip-compressed pickle of v and returns its path.
func WritePickle(t *testing.T, dir, name string, v any) string {
	t.Helper()

	data, err := EncodePickle(v)
	if err != nil {
		t.Fatalf("failed to encode pickle fixture: %v", err)
	}
	return WriteFile(t, dir, name, Gzip(t, data))
}

// WriteJSON writes a gzip-compressed JSON encoding of v and returns its path.
func WriteJSON(t *testing.T, dir, name string, v any) string {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to encode JSON fixture: %v", err)
	}
	return WriteFile(t, dir, name, Gzip(t, data))
}

// Names returns n distinct title-case names: "Name0000", "Name0001", ...
func Names(n int) []any {
	names := make([]any, n)
	for i := range names {
		names[i] = fmt.Sprintf("Name%04d", i)
	}
	return names
}

// HTMLPage is a small page of the kind saved when a browser downloads a
// repository view instead of the raw file.
const HTMLPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>first_names.pkl.gz at main · example/names · GitHub</title></head>
<body><p>Not the data you want.</p></body>
</html>
`
