package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/leapmodel/internal/config"
	"github.com/leapstack-labs/leapmodel/pkg/core"
	"github.com/spf13/cobra"
)

// NewConnectionCommand creates the connection command and its subcommands.
func NewConnectionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "connection",
		Aliases: []string{"conn"},
		Short:   "Manage stored database connections",
		Long: `Manage the database connections that data providers and the model
command refer to by name.`,
	}
	cmd.AddCommand(newConnectionAddCommand())
	cmd.AddCommand(newConnectionShowCommand())
	cmd.AddCommand(newConnectionListCommand())
	return cmd
}

func newConnectionAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Store a database connection",
		Long: `Store a database connection under a name. Without --type the target
from the configuration file is stored.`,
		Example: `  leapmodel connection add local --type duckdb --database warehouse.duckdb
  leapmodel connection add dw --type postgres --host db --database analytics --user analyst
  leapmodel connection add default`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			target, err := targetFromFlags(cmd, cmdCtx.Cfg)
			if err != nil {
				return err
			}
			meta := target.DatabaseMeta(args[0])

			ref, err := cmdCtx.Manager(false).StoreDatabaseMeta(cmd.Context(), meta, cmdCtx.Store)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmdCtx.Out, "Stored connection %s (%s)\n", ref, meta.Type)
			return nil
		},
	}
	cmd.Flags().String("type", "", "Database type (duckdb, postgres)")
	cmd.Flags().String("database", "", "Database name or DuckDB file path")
	cmd.Flags().String("host", "", "Database host")
	cmd.Flags().Int("port", 0, "Database port")
	cmd.Flags().String("user", "", "Database user")
	cmd.Flags().String("password", "", "Database password (supports ${ENV_VAR})")
	cmd.Flags().String("schema", "", "Default schema")
	cmd.Flags().StringToString("option", nil, "Driver option as key=value (repeatable)")
	return cmd
}

func targetFromFlags(cmd *cobra.Command, cfg *config.Config) (*config.TargetConfig, error) {
	f := cmd.Flags()
	typ, _ := f.GetString("type")
	if typ == "" {
		if cfg.Target == nil {
			return nil, fmt.Errorf("%w: --type is required when no target is configured", core.ErrValidation)
		}
		return cfg.Target, nil
	}

	t := &config.TargetConfig{Type: strings.ToLower(typ)}
	t.Database, _ = f.GetString("database")
	t.Host, _ = f.GetString("host")
	t.Port, _ = f.GetInt("port")
	t.User, _ = f.GetString("user")
	t.Password, _ = f.GetString("password")
	t.Schema, _ = f.GetString("schema")
	t.Options, _ = f.GetStringToString("option")

	config.ApplyTargetDefaults(t)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func newConnectionShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a stored connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			meta, err := cmdCtx.Manager(false).LoadDatabaseMeta(cmd.Context(), args[0], cmdCtx.Store)
			if err != nil {
				return err
			}
			return renderConnection(cmdCtx.Out, cmdCtx.Cfg.OutputFormat, meta)
		},
	}
}

func newConnectionListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored connections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			names, err := cmdCtx.Store.List(cmd.Context(), core.NamespaceDatabaseMeta)
			if err != nil {
				return err
			}
			if cmdCtx.Cfg.OutputFormat == config.OutputJSON {
				return renderJSON(cmdCtx.Out, names)
			}
			if len(names) == 0 {
				_, _ = fmt.Fprintln(cmdCtx.Out, "(0 connections)")
				return nil
			}
			t := newTable(cmdCtx.Out, "")
			t.AppendHeader(table.Row{"Connection", "Type", "Database"})
			for _, name := range names {
				meta, err := cmdCtx.Manager(false).LoadDatabaseMeta(cmd.Context(), name, cmdCtx.Store)
				if err != nil {
					return err
				}
				t.AppendRow(table.Row{meta.Name, meta.Type, meta.Database})
			}
			t.Render()
			return nil
		},
	}
}
