package adapter_test

import (
	"context"
	"testing"

	"github.com/leapstack-labs/leapmodel/pkg/adapter"
	"github.com/leapstack-labs/leapmodel/pkg/adapters/duckdb"
	"github.com/leapstack-labs/leapmodel/pkg/adapters/postgres"
	"github.com/leapstack-labs/leapmodel/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinAdaptersRegistered(t *testing.T) {
	names := adapter.ListAdapters()
	assert.Contains(t, names, "duckdb")
	assert.Contains(t, names, "postgres")

	adp, err := adapter.NewAdapter(core.AdapterConfig{Type: "duckdb"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &duckdb.Adapter{}, adp)

	adp, err = adapter.NewAdapter(core.AdapterConfig{Type: "Postgres"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &postgres.Adapter{}, adp)
}

func TestOpen_DuckDBInMemory(t *testing.T) {
	ctx := context.Background()

	adp, err := adapter.Open(ctx, core.AdapterConfig{Type: "duckdb", Path: ":memory:"}, nil)
	require.NoError(t, err)
	defer func() { _ = adp.Close() }()

	tables, err := adp.ListTables(ctx)
	require.NoError(t, err)
	assert.Empty(t, tables)
}
