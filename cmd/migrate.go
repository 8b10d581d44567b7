package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"appsuite-be/internal/database"
)

var MigrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Runs the database migrations.",
	Long:      `Applies (up, the default), rolls back one step (down) or lists (status) the embedded goose migrations against DATABASE_URL.`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if Cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is not set")
		}

		db, err := database.NewConnection(cmd.Context(), Cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

		direction := "up"
		if len(args) == 1 {
			direction = args[0]
		}

		switch direction {
		case "down":
			err = database.RollbackMigration(db)
		case "status":
			err = database.MigrationStatus(db)
		default:
			err = database.RunMigrations(db)
		}
		if err != nil {
			return err
		}

		fmt.Printf("migrate %s: done\n", direction)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(MigrateCmd)
}
