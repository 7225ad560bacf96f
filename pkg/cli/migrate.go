package cli

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql (migrations)
	"github.com/spf13/cobra"

	"github.com/glenigan-pipeline/dedup-engine/pkg/config"
	"github.com/glenigan-pipeline/dedup-engine/pkg/database"
)

func newMigrateCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Long: `Migrate brings the schema up to date, including the one-time addition of
the merge-state columns. Scans assume this has already been run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(version)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			logger, err := newLogger(cfg.Env)
			if err != nil {
				return fmt.Errorf("failed to build logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck

			db, err := sql.Open("pgx", cfg.Database.ConnectionString())
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			return database.RunMigrations(db, cfg.MigrationsPath, logger)
		},
	}
}
