package archive

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/nlpodyssey/gopickle/pickle"
	"github.com/nlpodyssey/gopickle/types"

	"github.com/JMR-dev/namemigrate/internal/model"
)

// Format is a serialization format an archive can hold.
type Format string

const (
	// FormatAuto detects the format from the payload's first byte.
	FormatAuto Format = "auto"
	// FormatPickle is a Python pickle of a list or tuple.
	FormatPickle Format = "pickle"
	// FormatJSON is a JSON array.
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned by ParseFormat for unrecognized names.
var ErrUnknownFormat = errors.New("unknown archive format")

// ParseFormat converts a configuration value into a Format.
// The empty string selects FormatAuto.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatPickle:
		return FormatPickle, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q (expected auto, pickle or json)", ErrUnknownFormat, s)
}

// DetectFormat guesses the format of a decompressed payload. A payload whose
// first non-space byte opens a JSON array is JSON; anything else is handed to
// the pickle decoder, which reports malformed input itself.
func DetectFormat(prefix []byte) Format {
	trimmed := bytes.TrimLeft(prefix, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return FormatJSON
	}
	return FormatPickle
}

// decodePickle reads one pickled object from r. The object must be a list
// or tuple of scalars.
func decodePickle(r io.Reader) ([]model.RawValue, error) {
	u := pickle.NewUnpickler(r)
	obj, err := u.Load()
	if err != nil {
		return nil, err
	}

	var (
		n   int
		get func(int) interface{}
	)
	switch v := obj.(type) {
	case *types.List:
		n, get = v.Len(), v.Get
	case *types.Tuple:
		n, get = v.Len(), v.Get
	default:
		return nil, fmt.Errorf("expected a flat list of names, found %s", describePickle(obj))
	}

	values := make([]model.RawValue, 0, n)
	for i := 0; i < n; i++ {
		v, ok := pickleScalar(get(i))
		if !ok {
			return nil, fmt.Errorf("element %d: expected a scalar name, found %s", i, describePickle(get(i)))
		}
		values = append(values, v)
	}
	return values, nil
}

// pickleScalar maps an unpickled element onto a RawValue.
func pickleScalar(v interface{}) (model.RawValue, bool) {
	switch x := v.(type) {
	case nil:
		return model.NullValue(), true
	case string:
		return model.TextValue(x), true
	case []byte:
		return model.TextValue(string(x)), true
	case bool:
		return model.BoolValue(x), true
	case int:
		return model.NumberValue(strconv.Itoa(x), x == 0), true
	case int64:
		return model.NumberValue(strconv.FormatInt(x, 10), x == 0), true
	case int32:
		return model.NumberValue(strconv.FormatInt(int64(x), 10), x == 0), true
	case *big.Int:
		return model.NumberValue(x.String(), x.Sign() == 0), true
	case float64:
		return floatValue(x), true
	case float32:
		return floatValue(float64(x)), true
	}
	return model.RawValue{}, false
}

// describePickle names the shape of an unpickled object for diagnostics.
func describePickle(obj interface{}) string {
	switch obj.(type) {
	case nil:
		return "None"
	case string:
		return "a single string"
	case *types.Dict, *types.OrderedDict:
		return "a mapping"
	case *types.List:
		return "a nested list"
	case *types.Tuple:
		return "a nested tuple"
	}
	return fmt.Sprintf("an object of type %T", obj)
}

// decodeJSON reads a JSON array of scalars from r. The array must be the
// only value in the payload.
func decodeJSON(r io.Reader) ([]model.RawValue, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok != json.Delim('[') {
		return nil, fmt.Errorf("expected a flat list of names, found %s", describeJSONToken(tok))
	}

	values := make([]model.RawValue, 0)
	for i := 0; dec.More(); i++ {
		var item interface{}
		if err := dec.Decode(&item); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		v, err := jsonScalar(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		values = append(values, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after the name list")
	}
	return values, nil
}

// describeJSONToken names the shape of a top-level JSON value for diagnostics.
func describeJSONToken(tok json.Token) string {
	switch x := tok.(type) {
	case nil:
		return "JSON null"
	case json.Delim:
		if x == '{' {
			return "a JSON object"
		}
	case string:
		return "a single string"
	case bool:
		return "a JSON boolean"
	case json.Number:
		return "a JSON number"
	}
	return fmt.Sprintf("JSON %v", tok)
}

// jsonScalar maps a decoded JSON element onto a RawValue.
func jsonScalar(v interface{}) (model.RawValue, error) {
	switch x := v.(type) {
	case nil:
		return model.NullValue(), nil
	case string:
		return model.TextValue(x), nil
	case bool:
		return model.BoolValue(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return model.NumberValue(strconv.FormatInt(i, 10), i == 0), nil
		}
		f, err := x.Float64()
		if err != nil {
			return model.RawValue{}, fmt.Errorf("invalid number %q", x.String())
		}
		return floatValue(f), nil
	case []interface{}:
		return model.RawValue{}, errors.New("expected a scalar name, found a nested array")
	case map[string]interface{}:
		return model.RawValue{}, errors.New("expected a scalar name, found an object")
	}
	return model.RawValue{}, fmt.Errorf("expected a scalar name, found %T", v)
}

// floatValue formats f the way Python's str() does, so numeric names read
// the same as in the source data. NaN is treated as a missing value.
func floatValue(f float64) model.RawValue {
	switch {
	case math.IsNaN(f):
		return model.NullValue()
	case math.IsInf(f, 1):
		return model.NumberValue("inf", false)
	case math.IsInf(f, -1):
		return model.NumberValue("-inf", false)
	}

	abs := math.Abs(f)
	var s string
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		s = strconv.FormatFloat(f, 'e', -1, 64)
	} else {
		s = strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.ContainsAny(s, ".e") {
			s += ".0"
		}
	}
	return model.NumberValue(s, f == 0)
}
