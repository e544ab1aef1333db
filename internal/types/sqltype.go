package types

// SQLType is the value type an expression evaluates to.
type SQLType string

const (
	Unknown   SQLType = ""
	Null      SQLType = "NULL"
	Integer   SQLType = "INTEGER"
	BigInt    SQLType = "BIGINT"
	Numeric   SQLType = "NUMERIC"
	Double    SQLType = "DOUBLE"
	Text      SQLType = "TEXT"
	Boolean   SQLType = "BOOLEAN"
	Timestamp SQLType = "TIMESTAMP"
	Date      SQLType = "DATE"
	UUID      SQLType = "UUID"
	JSON      SQLType = "JSON"
	Bytes     SQLType = "BYTES"
	Record    SQLType = "RECORD"
)

// IsNumeric reports whether t belongs to the numeric family.
func (t SQLType) IsNumeric() bool {
	switch t {
	case Integer, BigInt, Numeric, Double:
		return true
	}
	return false
}

// IsTemporal reports whether t is a date or time type.
func (t SQLType) IsTemporal() bool {
	return t == Timestamp || t == Date
}

// Comparable reports whether values of t and u can be compared.
// NULL compares with everything.
func (t SQLType) Comparable(u SQLType) bool {
	if t == Unknown || u == Unknown || t == Record || u == Record {
		return false
	}
	if t == Null || u == Null || t == u {
		return true
	}
	if t.IsNumeric() && u.IsNumeric() {
		return true
	}
	return t.IsTemporal() && u.IsTemporal()
}

// Widen returns the wider of two numeric types.
func Widen(t, u SQLType) SQLType {
	rank := func(x SQLType) int {
		switch x {
		case Integer:
			return 1
		case BigInt:
			return 2
		case Numeric:
			return 3
		case Double:
			return 4
		}
		return 0
	}
	if rank(u) > rank(t) {
		return u
	}
	return t
}
