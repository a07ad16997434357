package duckdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leapmodel/pkg/adapter"
	"github.com/leapstack-labs/leapmodel/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connect(t *testing.T, cfg core.AdapterConfig) *Adapter {
	t.Helper()
	adp := New(nil)
	require.NoError(t, adp.Connect(context.Background(), cfg))
	t.Cleanup(func() { _ = adp.Close() })
	return adp
}

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestNew(t *testing.T) {
	adp := New(nil)
	assert.Equal(t, "main", adp.DefaultSchema)
	assert.False(t, adp.IsConnected())
	assert.NotNil(t, adp.Logger)
}

func TestConnect_FileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warehouse.duckdb")
	connect(t, core.AdapterConfig{Path: path})

	_, err := os.Stat(path)
	assert.NoError(t, err, "database file is created on connect")
}

func TestConnect_DefaultsToMemory(t *testing.T) {
	adp := connect(t, core.AdapterConfig{})

	tables, err := adp.ListTables(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tables)
}

func TestConnect_AppliesSettings(t *testing.T) {
	adp := connect(t, core.AdapterConfig{
		Path: ":memory:",
		Params: map[string]any{
			"settings": map[string]any{"threads": 2},
		},
	})

	var threads string
	require.NoError(t, adp.DB.QueryRowContext(context.Background(), "SELECT current_setting('threads')").Scan(&threads))
	assert.Equal(t, "2", threads)
}

func TestConnect_Failures(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]any
		errMsg string
	}{
		{
			name:   "unknown params key",
			params: map[string]any{"unknown_key": true},
			errMsg: "invalid duckdb params",
		},
		{
			name:   "unknown setting",
			params: map[string]any{"settings": map[string]any{"no_such_setting": "1"}},
			errMsg: "failed to apply setting no_such_setting",
		},
		{
			name:   "missing extension",
			params: map[string]any{"extensions": []any{"no_such_extension"}},
			errMsg: "no_such_extension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adp := New(nil)
			err := adp.Connect(context.Background(), core.AdapterConfig{Path: ":memory:", Params: tt.params})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.False(t, adp.IsConnected(), "a failed connect leaves no open handle")
		})
	}
}

func TestAdapter_NotConnected(t *testing.T) {
	ctx := context.Background()
	adp := New(nil)

	_, err := adp.ListTables(ctx)
	assert.ErrorIs(t, err, adapter.ErrNotConnected)

	_, err = adp.GetTableMetadata(ctx, "sales")
	assert.ErrorIs(t, err, adapter.ErrNotConnected)

	assert.ErrorIs(t, adp.LoadCSV(ctx, "sales", "sales.csv"), adapter.ErrNotConnected)
	assert.NoError(t, adp.Close())
}

func TestAdapter_LoadCSVThenDescribe(t *testing.T) {
	ctx := context.Background()
	adp := connect(t, core.AdapterConfig{Path: ":memory:"})

	path := writeCSV(t, "sales.csv", `country,city,sold_on,quantity,amount
France,Paris,2024-01-05,3,10.5
Spain,Madrid,2024-01-06,1,7.75
`)
	require.NoError(t, adp.LoadCSV(ctx, "sales", path))

	tables, err := adp.ListTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"sales"}, tables)

	meta, err := adp.GetTableMetadata(ctx, "sales")
	require.NoError(t, err)
	assert.Equal(t, "main", meta.Schema)
	assert.Equal(t, int64(2), meta.RowCount)

	types := make(map[string]core.DataType, len(meta.Columns))
	var names []string
	for _, c := range meta.Columns {
		types[c.Name] = c.DataType
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"country", "city", "sold_on", "quantity", "amount"}, names)
	assert.Equal(t, map[string]core.DataType{
		"country":  core.DataTypeString,
		"city":     core.DataTypeString,
		"sold_on":  core.DataTypeDate,
		"quantity": core.DataTypeNumeric,
		"amount":   core.DataTypeNumeric,
	}, types)

	// Loading again replaces the table.
	path = writeCSV(t, "sales.csv", "country\nItaly\n")
	require.NoError(t, adp.LoadCSV(ctx, "sales", path))
	meta, err = adp.GetTableMetadata(ctx, "main.sales")
	require.NoError(t, err)
	require.Len(t, meta.Columns, 1)
	assert.Equal(t, int64(1), meta.RowCount)
}

func TestAdapter_LoadCSVMissingFile(t *testing.T) {
	adp := connect(t, core.AdapterConfig{Path: ":memory:"})

	err := adp.LoadCSV(context.Background(), "sales", filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load CSV")
}

func TestAdapter_ListTablesSorted(t *testing.T) {
	ctx := context.Background()
	adp := connect(t, core.AdapterConfig{Path: ":memory:"})

	require.NoError(t, adp.Exec(ctx, `CREATE TABLE sales (region VARCHAR, amount DOUBLE)`))
	require.NoError(t, adp.Exec(ctx, `CREATE VIEW customers AS SELECT 1 AS id`))

	tables, err := adp.ListTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"customers", "sales"}, tables)

	_, err = adp.GetTableMetadata(ctx, "orders")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestAdapter_Registered(t *testing.T) {
	adp, err := adapter.NewAdapter(core.AdapterConfig{Type: "duckdb"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &Adapter{}, adp)
}
