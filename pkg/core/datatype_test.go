package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataTypeFromSQL(t *testing.T) {
	tests := []struct {
		sqlType string
		want    DataType
	}{
		{"BIGINT", DataTypeNumeric},
		{"integer", DataTypeNumeric},
		{"DECIMAL(18,3)", DataTypeNumeric},
		{"double precision", DataTypeNumeric},
		{"VARCHAR", DataTypeString},
		{"character varying", DataTypeString},
		{"TIMESTAMP WITH TIME ZONE", DataTypeDate},
		{"DATE", DataTypeDate},
		{"BOOLEAN", DataTypeBoolean},
		{"BLOB", DataTypeBinary},
		{"STRUCT(a INT)", DataTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.sqlType, func(t *testing.T) {
			assert.Equal(t, tt.want, DataTypeFromSQL(tt.sqlType))
		})
	}
}

func TestParseDataType(t *testing.T) {
	assert.Equal(t, DataTypeNone, ParseDataType(""))
	assert.Equal(t, DataTypeNumeric, ParseDataType("numeric"))
	assert.Equal(t, DataTypeString, ParseDataType(" STRING "))
	assert.Equal(t, DataTypeUnknown, ParseDataType("IMAGE"))
}

func TestDatabaseMeta_AdapterConfig(t *testing.T) {
	meta := DatabaseMeta{Name: "local", Type: "duckdb", Database: "/tmp/warehouse.duckdb"}
	cfg := meta.AdapterConfig()
	assert.Equal(t, "duckdb", cfg.Type)
	assert.Equal(t, "/tmp/warehouse.duckdb", cfg.Path)

	pg := DatabaseMeta{Name: "pg", Type: "postgres", Host: "db", Port: 5433, Database: "sales", Username: "u"}
	cfg = pg.AdapterConfig()
	assert.Empty(t, cfg.Path)
	assert.Equal(t, "db", cfg.Host)
	assert.Equal(t, 5433, cfg.Port)
	assert.Equal(t, "sales", cfg.Database)
}
