package core

import "strings"

// DataType is the logical type of a source column.
// The string values are part of the annotation XML wire format.
type DataType string

// Data type constants. The zero value means "no type recorded".
const (
	DataTypeNone    DataType = ""
	DataTypeUnknown DataType = "UNKNOWN"
	DataTypeString  DataType = "STRING"
	DataTypeNumeric DataType = "NUMERIC"
	DataTypeDate    DataType = "DATE"
	DataTypeBoolean DataType = "BOOLEAN"
	DataTypeBinary  DataType = "BINARY"
)

var knownDataTypes = map[DataType]bool{
	DataTypeUnknown: true,
	DataTypeString:  true,
	DataTypeNumeric: true,
	DataTypeDate:    true,
	DataTypeBoolean: true,
	DataTypeBinary:  true,
}

// ParseDataType parses a wire name such as "NUMERIC".
// Empty input yields DataTypeNone; unrecognised names yield DataTypeUnknown.
func ParseDataType(s string) DataType {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return DataTypeNone
	}
	if dt := DataType(s); knownDataTypes[dt] {
		return dt
	}
	return DataTypeUnknown
}

// DataTypeFromSQL maps a database column type (as reported by
// information_schema.columns.data_type) to a logical DataType.
func DataTypeFromSQL(sqlType string) DataType {
	t := strings.ToUpper(strings.TrimSpace(sqlType))
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}

	switch t {
	case "TINYINT", "SMALLINT", "INTEGER", "INT", "INT2", "INT4", "INT8", "BIGINT", "HUGEINT",
		"UTINYINT", "USMALLINT", "UINTEGER", "UBIGINT", "UHUGEINT",
		"DECIMAL", "NUMERIC", "REAL", "FLOAT", "FLOAT4", "FLOAT8", "DOUBLE", "DOUBLE PRECISION":
		return DataTypeNumeric
	case "VARCHAR", "CHAR", "CHARACTER", "CHARACTER VARYING", "TEXT", "STRING", "BPCHAR", "UUID", "ENUM":
		return DataTypeString
	case "DATE", "TIME", "TIMESTAMP", "TIMESTAMPTZ", "TIMESTAMP WITH TIME ZONE",
		"TIMESTAMP WITHOUT TIME ZONE", "TIME WITHOUT TIME ZONE", "INTERVAL":
		return DataTypeDate
	case "BOOLEAN", "BOOL":
		return DataTypeBoolean
	case "BLOB", "BYTEA", "VARBINARY", "BINARY":
		return DataTypeBinary
	default:
		return DataTypeUnknown
	}
}
