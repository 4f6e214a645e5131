package main

import (
	"context"

	"github.com/spf13/cobra"
)

// migrateCommand constructs the 'migrate' subcommand that applies database
// migrations to the latest version using goose.
func migrateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrates database to the latest version",
		Run: func(cmd *cobra.Command, args []string) {
			_, closeDB := a.openDatabase(context.Background())
			closeDB()
		},
	}

	return cmd
}
