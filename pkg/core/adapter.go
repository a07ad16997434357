package core

// AdapterConfig holds configuration for connecting to a database.
type AdapterConfig struct {
	Type     string
	Path     string
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Schema   string
	Options  map[string]string
	Params   map[string]any
}

// Column represents a column in a source table.
type Column struct {
	Name       string
	Type       string
	DataType   DataType
	Nullable   bool
	PrimaryKey bool
	Position   int
}

// IsNumeric reports whether the column can back a measure.
func (c Column) IsNumeric() bool {
	return c.DataType == DataTypeNumeric
}

// TableMetadata holds metadata about a source table.
type TableMetadata struct {
	Schema    string
	Name      string
	Columns   []Column
	RowCount  int64
	SizeBytes int64
}
