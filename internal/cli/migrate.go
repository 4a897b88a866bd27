package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables and indexes",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	// openDatabase migrates on connect
	database, err := openDatabase(appConfig)
	if err != nil {
		return trackCLIError("migrate", err)
	}
	defer func() { _ = database.Close() }()

	tables, err := database.Migrator().GetTables()
	if err != nil {
		return trackCLIError("migrate", fmt.Errorf("list tables: %w", err))
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Migrated %s database (%d tables)\n", database.Driver(), len(tables))
	return nil
}
