package cmd

import (
	"fmt"

	"github.com/habitboard/habitboard/internal/db"
	"github.com/spf13/cobra"
)

func MigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(true)
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(false)
		},
	})

	return migrateCmd
}

func runMigrate(up bool) error {
	cfg := loadConfig()

	database, err := db.Open(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close(database)

	if up {
		return db.MigrateUp(database.DB, cfg.DBDriver)
	}
	return db.MigrateDown(database.DB, cfg.DBDriver)
}
