package commands

import (
	"fmt"

	"github.com/leapstack-labs/leapmodel/internal/config"
	"github.com/leapstack-labs/leapmodel/internal/datasource"
	"github.com/leapstack-labs/leapmodel/pkg/automodel"
	"github.com/leapstack-labs/leapmodel/pkg/core"
	"github.com/leapstack-labs/leapmodel/pkg/geo"
	"github.com/spf13/cobra"
)

// NewModelCommand creates the model command.
func NewModelCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model [table]...",
		Short: "Auto-model source tables and apply annotation groups",
		Long: `Introspect source tables, build a model from their columns and optionally
apply stored annotation groups to it.

Numeric columns become SUM measures, other columns become dimensions and
columns recognised as geographic roles become levels of one geographic
dimension. With --relational each table becomes a category of fields.

The source is the --connection stored in the metastore, otherwise the
configured target. CSV files given with --csv are loaded first; without a
connection or target they are loaded into an in-memory DuckDB database.`,
		Example: `  leapmodel model orders --connection dw
  leapmodel model --csv sales.csv --apply sales
  leapmodel model orders customers --relational --output json`,
		RunE: runModel,
	}
	cmd.Flags().StringP("connection", "c", "", "Stored connection to read tables from")
	cmd.Flags().StringSlice("csv", nil, "CSV file to load as a table (repeatable)")
	cmd.Flags().StringSlice("apply", nil, "Annotation group to apply, in order (repeatable)")
	cmd.Flags().String("name", "", "Model name (default: first table)")
	cmd.Flags().Bool("relational", false, "Build a relational model instead of an OLAP model")
	return cmd
}

func runModel(cmd *cobra.Command, args []string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	f := cmd.Flags()
	connection, _ := f.GetString("connection")
	csvFiles, _ := f.GetStringSlice("csv")
	groups, _ := f.GetStringSlice("apply")
	name, _ := f.GetString("name")
	relational, _ := f.GetBool("relational")

	meta, params, err := resolveSource(cmdCtx, cmd, connection, len(csvFiles) > 0)
	if err != nil {
		return err
	}

	src, err := datasource.Open(ctx, meta, params, cmdCtx.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	tables := append([]string(nil), args...)
	for _, path := range csvFiles {
		table, err := src.LoadCSV(ctx, "", path)
		if err != nil {
			return err
		}
		tables = append(tables, table)
	}
	if len(tables) == 0 {
		return fmt.Errorf("%w: no tables given (pass table names or --csv)", core.ErrValidation)
	}

	mode := datasource.ModeOLAP
	if relational {
		mode = datasource.ModeRelational
	}
	strategy := automodel.New(geo.NewContextFromConfig(cmdCtx.Cfg.Geo), cmdCtx.Logger)
	model, err := src.BuildModel(ctx, strategy, mode, name, tables...)
	if err != nil {
		return err
	}

	manager := cmdCtx.Manager(false)
	for _, g := range groups {
		if err := manager.ApplyGroupByName(ctx, g, model, cmdCtx.Store); err != nil {
			return fmt.Errorf("failed to apply group %s: %w", g, err)
		}
		cmdCtx.Logger.Debug("applied group", "group", g, "model", model.Name)
	}

	return renderModel(cmdCtx.Out, cmdCtx.Cfg.OutputFormat, model)
}

// resolveSource picks the connection for the model command: a stored
// connection, the configured target, or an in-memory DuckDB for CSV input.
func resolveSource(cmdCtx *CommandContext, cmd *cobra.Command, connection string, hasCSV bool) (*core.DatabaseMeta, map[string]any, error) {
	if connection != "" {
		meta, err := cmdCtx.Manager(false).LoadDatabaseMeta(cmd.Context(), connection, cmdCtx.Store)
		if err != nil {
			return nil, nil, err
		}
		return meta, nil, nil
	}
	if target := cmdCtx.Cfg.Target; target != nil {
		return target.DatabaseMeta(config.DefaultTarget), target.Params, nil
	}
	if hasCSV {
		return &core.DatabaseMeta{Name: "csv", Type: "duckdb", Database: ":memory:"}, nil, nil
	}
	return nil, nil, fmt.Errorf("%w: no --connection given and no target configured", core.ErrValidation)
}
