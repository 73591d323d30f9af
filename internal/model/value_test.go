package model

import "testing"

// TestRawValueTruthy tests which decoded values count as present.
func TestRawValueTruthy(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		value    RawValue
		expected bool
	}{
		{"null", NullValue(), false},
		{"empty text", TextValue(""), false},
		{"blank text", TextValue("   "), true},
		{"text", TextValue("anna"), true},
		{"zero", NumberValue("0", true), false},
		{"float zero", NumberValue("0.0", true), false},
		{"number", NumberValue("42", false), true},
		{"false", BoolValue(false), false},
		{"true", BoolValue(true), true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.value.Truthy(); got != tc.expected {
				t.Errorf("Truthy() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

// TestBoolValueText tests the text form of booleans.
func TestBoolValueText(t *testing.T) {
	t.Parallel()

	if got := BoolValue(true).Text; got != "True" {
		t.Errorf("got %q, expected %q", got, "True")
	}
	if got := BoolValue(false).Text; got != "False" {
		t.Errorf("got %q, expected %q", got, "False")
	}
}

// TestValueKindString tests the String method of ValueKind.
func TestValueKindString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		kind     ValueKind
		expected string
	}{
		{ValueNull, "null"},
		{ValueText, "text"},
		{ValueNumber, "number"},
		{ValueBool, "bool"},
		{ValueKind(99), "unknown"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.kind.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.kind.String(), tc.expected)
			}
		})
	}
}
