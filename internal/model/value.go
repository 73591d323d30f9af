package model

// ValueKind is the shape of one element decoded from an archive.
type ValueKind int

const (
	// ValueNull is a missing value (Python None, JSON null).
	ValueNull ValueKind = iota
	// ValueText is a string.
	ValueText
	// ValueNumber is an integer or floating point number.
	ValueNumber
	// ValueBool is a boolean.
	ValueBool
)

// String returns the kind name used in diagnostics.
func (k ValueKind) String() string {
	switch k {
	case ValueNull:
		return "null"
	case ValueText:
		return "text"
	case ValueNumber:
		return "number"
	case ValueBool:
		return "bool"
	default:
		return "unknown"
	}
}

// RawValue is one element of a decoded archive before normalization.
// Archives may hold scalars of mixed types; the loader maps each element
// onto this variant so later stages never see an unknown type.
type RawValue struct {
	// Kind is the decoded shape.
	Kind ValueKind

	// Text is the string form of the value: the string itself for text,
	// the formatted number for numbers, "True"/"False" for booleans.
	Text string

	// Zero is true for numeric zero and for false.
	Zero bool
}

// NullValue returns a null RawValue.
func NullValue() RawValue {
	return RawValue{Kind: ValueNull}
}

// TextValue returns a text RawValue.
func TextValue(s string) RawValue {
	return RawValue{Kind: ValueText, Text: s}
}

// NumberValue returns a number RawValue with its formatted representation.
func NumberValue(formatted string, zero bool) RawValue {
	return RawValue{Kind: ValueNumber, Text: formatted, Zero: zero}
}

// BoolValue returns a boolean RawValue.
func BoolValue(b bool) RawValue {
	if b {
		return RawValue{Kind: ValueBool, Text: "True"}
	}
	return RawValue{Kind: ValueBool, Text: "False", Zero: true}
}

// Truthy reports whether the value counts as present. Null, empty text,
// zero and false do not.
func (v RawValue) Truthy() bool {
	switch v.Kind {
	case ValueNull:
		return false
	case ValueText:
		return v.Text != ""
	default:
		return !v.Zero
	}
}
