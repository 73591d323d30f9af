package model

// NameKind identifies which category a list of names belongs to.
type NameKind int

const (
	// FirstNames is the given-name list.
	FirstNames NameKind = iota
	// LastNames is the family-name list.
	LastNames
)

// Kinds returns every NameKind in migration order.
func Kinds() []NameKind {
	return []NameKind{FirstNames, LastNames}
}

// String returns the human-readable label used in progress output.
func (k NameKind) String() string {
	switch k {
	case FirstNames:
		return "first names"
	case LastNames:
		return "last names"
	default:
		return "unknown names"
	}
}

// Key returns a stable identifier suitable for JSON keys and log attributes.
func (k NameKind) Key() string {
	switch k {
	case FirstNames:
		return "first_names"
	case LastNames:
		return "last_names"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so NameKind can key JSON maps.
func (k NameKind) MarshalText() ([]byte, error) {
	return []byte(k.Key()), nil
}

// NameList is the deduplicated collection of names for one category,
// tagged with the table it is written to.
//
// Names holds one NameRecord per element: non-empty, title-cased and unique
// within the list. The order is the order of first occurrence in the source.
type NameList struct {
	// Kind is the category of the list.
	Kind NameKind

	// Table is the database table the list replaces.
	Table string

	// Names are the normalized records.
	Names []string
}

// Len returns the number of records in the list.
func (l *NameList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Names)
}
