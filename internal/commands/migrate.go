package commands

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/cesarberbelbr/household-finance-manager/internal/config"
	"github.com/cesarberbelbr/household-finance-manager/internal/logging"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage/migrations"
)

func newMigrateCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			logging.UseAsStandard(logging.SetupLogging(cfg.Log.Level))

			if cfg.Storage.Driver != config.DriverPostgres {
				return fmt.Errorf("migrate needs the postgres driver, got %q", cfg.Storage.Driver)
			}

			db, err := sql.Open("postgres", cfg.Postgres.URL())
			if err != nil {
				return fmt.Errorf("sql.Open: %w", err)
			}
			defer db.Close()

			before, after, err := migrations.Up(db)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema version %d -> %d\n", before, after)
			return err
		},
	}
}
