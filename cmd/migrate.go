package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/migrations"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			defer log.Close()

			db, err := openDB(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := migrations.Up(cmd.Context(), db, log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", applied)
			return nil
		},
	}
}
