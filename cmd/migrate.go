package cmd

import (
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer closeDB(db)

			logger.Info("Database migrated")
			return nil
		},
	}
}
