// Package commands implements the leapmodel subcommands.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/leapmodel/internal/config"
	"github.com/leapstack-labs/leapmodel/internal/metastore"
	"github.com/leapstack-labs/leapmodel/pkg/annotation"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
	Store  *metastore.SQLiteStore
	Out    io.Writer
}

// NewCommandContext opens the metastore named by the configuration.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := config.FromContext(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	if dir := filepath.Dir(cfg.StatePath); dir != "." && dir != "" && cfg.StatePath != ":memory:" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	store := metastore.NewSQLiteStore(logger)
	if err := store.Open(cmd.Context(), cfg.StatePath); err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = store.Close()
	}

	return &CommandContext{
		Cfg:    cfg,
		Logger: logger,
		Store:  store,
		Out:    cmd.OutOrStdout(),
	}, cleanup, nil
}

// Manager returns the group manager for ordinary or shared-dimension groups.
func (c *CommandContext) Manager(shared bool) *annotation.Manager {
	if shared {
		return annotation.NewSharedDimensionManager(c.Logger)
	}
	return annotation.NewManager(c.Logger)
}

// Codec returns the XML group codec.
func (c *CommandContext) Codec() *annotation.XMLCodec {
	return annotation.NewXMLCodec(c.Logger)
}
