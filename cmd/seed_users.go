package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/maintenance-system/maintenance-service/internal/config"
	"github.com/maintenance-system/maintenance-service/internal/database"
	"github.com/maintenance-system/maintenance-service/internal/logs"
)

var seedUsersCmd = &cobra.Command{
	Use:   "seed-users",
	Short: "Create the initial operator and maintenance accounts (passwords from OPERATOR_PASSWORD / MAINTENANCE_PASSWORD)",
	RunE:  runSeedUsers,
}

func runSeedUsers(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := database.MigrateUp(cfg.DatabaseURL()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.DSN())
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	if err := database.SeedUsers(db); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	logs.Logger.Info("seed-users: ok")
	return nil
}
