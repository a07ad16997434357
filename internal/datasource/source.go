// Package datasource resolves stored connection metadata into a live
// adapter and turns introspected tables into logical models.
package datasource

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leapmodel/pkg/adapter"
	"github.com/leapstack-labs/leapmodel/pkg/automodel"
	"github.com/leapstack-labs/leapmodel/pkg/core"
	"github.com/leapstack-labs/leapmodel/pkg/olap"
)

// Source is an open connection to a source database.
type Source struct {
	Name    string
	adapter adapter.Adapter
	logger  *slog.Logger
}

// Open connects to the database described by meta. params carries
// adapter-specific settings (for example duckdb extensions) and may be nil.
func Open(ctx context.Context, meta *core.DatabaseMeta, params map[string]any, logger *slog.Logger) (*Source, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if meta == nil {
		return nil, fmt.Errorf("%w: connection metadata is required", core.ErrValidation)
	}

	cfg := meta.AdapterConfig()
	cfg.Params = params

	adp, err := adapter.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", meta.Name, err)
	}

	logger.Debug("opened data source", slog.String("name", meta.Name), slog.String("type", meta.Type))
	return &Source{Name: meta.Name, adapter: adp, logger: logger}, nil
}

// NewSource wraps an already connected adapter.
func NewSource(name string, adp adapter.Adapter, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Source{Name: name, adapter: adp, logger: logger}
}

// Close releases the underlying connection.
func (s *Source) Close() error {
	return s.adapter.Close()
}

// Tables lists the tables of the source's default schema.
func (s *Source) Tables(ctx context.Context) ([]string, error) {
	return s.adapter.ListTables(ctx)
}

// Describe introspects the named tables in order.
func (s *Source) Describe(ctx context.Context, tables ...string) ([]core.TableMetadata, error) {
	metas := make([]core.TableMetadata, 0, len(tables))
	for _, t := range tables {
		meta, err := s.adapter.GetTableMetadata(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("failed to describe table %s: %w", t, err)
		}
		metas = append(metas, *meta)
	}
	return metas, nil
}

// LoadCSV loads a CSV file into a table and returns the table name. An
// empty table name derives one from the file name.
func (s *Source) LoadCSV(ctx context.Context, table, path string) (string, error) {
	if table == "" {
		table = TableNameFromPath(path)
	}
	if err := s.adapter.LoadCSV(ctx, table, path); err != nil {
		return "", err
	}
	s.logger.Debug("loaded csv", slog.String("table", table), slog.String("path", path))
	return table, nil
}

// TableNameFromPath derives a table name from a file path: the base name
// without extension, with dashes, dots and spaces replaced by underscores.
func TableNameFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.NewReplacer("-", "_", " ", "_", ".", "_").Replace(base)
}

// Mode selects which auto-modeling pass BuildModel runs.
type Mode string

// Auto-modeling modes.
const (
	ModeOLAP       Mode = "olap"
	ModeRelational Mode = "relational"
)

// BuildModel introspects the tables and auto-models them. An empty name
// uses the first table's name.
func (s *Source) BuildModel(ctx context.Context, strategy *automodel.Strategy, mode Mode, name string, tables ...string) (*olap.Model, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("%w: at least one table is required", core.ErrValidation)
	}
	metas, err := s.Describe(ctx, tables...)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = metas[0].Name
	}

	model := olap.NewModel(name, metas...)
	switch mode {
	case ModeRelational:
		err = strategy.AutoModelRelational(model)
	case ModeOLAP, "":
		err = strategy.AutoModelOlap(model)
	default:
		return nil, fmt.Errorf("%w: unknown model mode %q", core.ErrValidation, mode)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to auto-model %s: %w", name, err)
	}

	s.logger.Debug("built model",
		slog.String("model", name),
		slog.Int("tables", len(metas)),
		slog.Int("measures", len(model.Measures())),
		slog.Int("dimensions", len(model.Dimensions())))
	return model, nil
}
