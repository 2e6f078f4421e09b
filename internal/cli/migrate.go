package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blogosphere/blog/internal/infrastructure/db/sqlstore"
)

// NewMigrateCommand creates the migrate command and its up/down/version
// subcommands.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the SQL schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sqlstore.Migrate(cmd.Context(), storeConfig(rootOpts.Config)); err != nil {
				return err
			}
			rootOpts.Log.Info().Str("driver", rootOpts.Config.Store.Driver).Msg("schema up to date")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Revert every migration (drops all data)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sqlstore.MigrateDown(cmd.Context(), storeConfig(rootOpts.Config)); err != nil {
				return err
			}
			rootOpts.Log.Warn().Msg("schema reverted")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, dirty, err := sqlstore.Version(cmd.Context(), storeConfig(rootOpts.Config))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", v, dirty)
			return nil
		},
	})

	return cmd
}
