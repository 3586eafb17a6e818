package commands

import (
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rt.cfg.StorageBackend != config.StoragePostgres {
				return errors.New("migrate requires STORAGE_DRIVER=postgres")
			}
			if err := database.RunMigrations(rt.cfg.DatabaseURL, rt.cfg.MigrationsPath, rt.logger); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
