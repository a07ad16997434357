package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// NewGroupCommand creates the group command and its subcommands.
func NewGroupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage annotation groups",
		Long: `Manage stored annotation groups and shared dimension groups.

Groups are stored in the metastore and exchanged as annotation XML documents.
Use --shared to work with shared dimension groups instead of model groups.`,
	}
	cmd.PersistentFlags().Bool("shared", false, "Operate on shared dimension groups")

	cmd.AddCommand(newGroupListCommand())
	cmd.AddCommand(newGroupShowCommand())
	cmd.AddCommand(newGroupImportCommand())
	cmd.AddCommand(newGroupExportCommand())
	cmd.AddCommand(newGroupDeleteCommand())
	return cmd
}

func sharedFlag(cmd *cobra.Command) bool {
	shared, _ := cmd.Flags().GetBool("shared")
	return shared
}

func newGroupListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored groups",
		Example: `  leapmodel group list
  leapmodel group list --shared --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			groups, err := cmdCtx.Manager(sharedFlag(cmd)).ListGroups(cmd.Context(), cmdCtx.Store)
			if err != nil {
				return err
			}
			return renderGroups(cmdCtx.Out, cmdCtx.Cfg.OutputFormat, groups)
		},
	}
}

func newGroupShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show the annotations of a group",
		Example: `  leapmodel group show sales
  leapmodel group show teams --shared --output xml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			g, err := cmdCtx.Manager(sharedFlag(cmd)).ReadGroup(cmd.Context(), args[0], cmdCtx.Store)
			if err != nil {
				return err
			}
			return renderGroup(cmdCtx.Out, cmdCtx.Cfg.OutputFormat, g, cmdCtx.Codec())
		},
	}
}

func newGroupImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.xml>...",
		Short: "Import groups from annotation XML files",
		Long: `Import one or more annotation XML documents as groups.

The group name defaults to the file name without extension. A document
marked as a shared dimension is stored as a shared dimension group.
An existing group with the same name is replaced.`,
		Example: `  leapmodel group import sales.xml
  leapmodel group import teams.xml --name Teams --shared`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			if name != "" && len(args) > 1 {
				return fmt.Errorf("--name can only be used with a single file")
			}

			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			codec := cmdCtx.Codec()
			for _, path := range args {
				data, err := os.ReadFile(path) //nolint:gosec // user-provided path is expected
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}
				g, err := codec.Decode(data)
				if err != nil {
					return fmt.Errorf("failed to decode %s: %w", path, err)
				}
				g.Name = name
				if g.Name == "" {
					g.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				}

				shared := sharedFlag(cmd) || g.IsSharedDimension()
				if err := cmdCtx.Manager(shared).CreateGroup(cmd.Context(), g, cmdCtx.Store); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmdCtx.Out, "Imported group %s (%d annotations)\n", g.Name, g.Len())
			}
			return nil
		},
	}
	cmd.Flags().String("name", "", "Group name (default: file name)")
	return cmd
}

func newGroupExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <name>",
		Short: "Export a group as annotation XML",
		Example: `  leapmodel group export sales > sales.xml
  leapmodel group export teams --shared --file teams.xml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			g, err := cmdCtx.Manager(sharedFlag(cmd)).ReadGroup(cmd.Context(), args[0], cmdCtx.Store)
			if err != nil {
				return err
			}
			data, err := cmdCtx.Codec().Encode(g)
			if err != nil {
				return err
			}

			if path, _ := cmd.Flags().GetString("file"); path != "" {
				if err := os.WriteFile(path, data, 0600); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
				cmdCtx.Logger.Debug("exported group", "group", g.Name, "path", path)
				return nil
			}
			_, err = cmdCtx.Out.Write(append(data, '\n'))
			return err
		},
	}
	cmd.Flags().StringP("file", "f", "", "Write to file instead of stdout")
	return cmd
}

func newGroupDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a group, or all groups with --all",
		Example: `  leapmodel group delete sales
  leapmodel group delete --all --shared`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			if all == (len(args) == 1) {
				return fmt.Errorf("specify a group name or --all")
			}

			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			m := cmdCtx.Manager(sharedFlag(cmd))
			if all {
				if err := m.DeleteAllGroups(cmd.Context(), cmdCtx.Store); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmdCtx.Out, "Deleted all groups in %s\n", m.Namespace())
				return nil
			}
			if !m.ContainsGroup(cmd.Context(), args[0], cmdCtx.Store) {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Group %s does not exist\n", args[0])
				return nil
			}
			if err := m.DeleteGroup(cmd.Context(), args[0], cmdCtx.Store); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmdCtx.Out, "Deleted group %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().Bool("all", false, "Delete every group")
	return cmd
}
