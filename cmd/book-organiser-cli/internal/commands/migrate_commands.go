package commands

import (
	"fmt"

	"github.com/MGTheTrain/book-organiser/internal/infrastructure/persistence"
	"github.com/spf13/cobra"
)

func migrateCmd(cmd *cobra.Command, _ []string) error {
	env, err := setupEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	if err := persistence.Migrate(env.db); err != nil {
		return err
	}

	env.log.Info("Database migrations completed successfully")
	_, err = fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
	return err
}

func initMigrateCommand(rootCmd *cobra.Command) {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE:  migrateCmd,
	})
}
