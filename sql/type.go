package sql

// Type represents a column or expression type.
type Type interface {
	// String returns the SQL name of the type.
	String() string
}

type baseType string

func (t baseType) String() string { return string(t) }

var (
	// Null represents the type of NULL values.
	Null Type = baseType("NULL")
	// Boolean is a boolean type.
	Boolean Type = baseType("BOOLEAN")
	// Int64 is a 64-bit integer type.
	Int64 Type = baseType("BIGINT")
	// Float64 is a 64-bit floating point type.
	Float64 Type = baseType("DOUBLE")
	// Text is a variable-length string type.
	Text Type = baseType("TEXT")
	// Date is a date type without time.
	Date Type = baseType("DATE")
	// Timestamp is a date and time type.
	Timestamp Type = baseType("TIMESTAMP")
)
