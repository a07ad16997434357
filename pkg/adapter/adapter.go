// Package adapter defines the source database contract used to introspect
// tables before modeling. Concrete adapters live under pkg/adapters and
// register themselves from init.
package adapter

import (
	"context"
	"errors"

	"github.com/leapstack-labs/leapmodel/pkg/core"
)

// ErrNotConnected is returned by adapter operations called before Connect.
var ErrNotConnected = errors.New("database connection not established")

// Adapter is implemented by every source database adapter. It only
// describes sources; it never runs caller-supplied SQL.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg core.AdapterConfig) error

	// Close closes the database connection and releases resources.
	Close() error

	// ListTables returns the names of the tables in the configured schema.
	ListTables(ctx context.Context) ([]string, error)

	// GetTableMetadata retrieves column metadata for a table.
	// The table may be qualified as schema.name.
	GetTableMetadata(ctx context.Context, table string) (*core.TableMetadata, error)

	// LoadCSV replaces tableName with the contents of a CSV file.
	LoadCSV(ctx context.Context, tableName string, filePath string) error
}
