// Package cli implements the dedup-engine command tree.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glenigan-pipeline/dedup-engine/pkg/config"
	"github.com/glenigan-pipeline/dedup-engine/pkg/database"
	"github.com/glenigan-pipeline/dedup-engine/pkg/repositories"
	"github.com/glenigan-pipeline/dedup-engine/pkg/services"
)

// app holds the wired dependencies shared by the commands.
type app struct {
	cfg         *config.Config
	logger      *zap.Logger
	db          *database.DB
	projectRepo repositories.ProjectRepository
	scanService services.ScanService
}

// Execute runs the CLI and returns the resulting error, if any.
func Execute(version string) error {
	return newRootCmd(version).Execute()
}

func newRootCmd(version string) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:     "dedup-engine",
		Short:   "Identify and consolidate duplicate construction project records",
		Long: `dedup-engine scans the project database for records that describe the
same physical development, scores each candidate pair from multiple weak
signals, auto-merges pairs above a confidence threshold and flags the rest
for human review.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newScanCmd(a, version),
		newCheckCmd(a, version),
		newMigrateCmd(version),
	)

	return root
}

// setup loads config, opens the database and wires the services. The
// returned cleanup must be called before exit. The returned context carries
// the pool as the active database scope.
func (a *app) setup(ctx context.Context, version string) (context.Context, func(), error) {
	cfg, err := config.Load(version)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	logger, err := newLogger(cfg.Env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	a.logger = logger

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Sync() //nolint:errcheck
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a.db = db

	a.projectRepo = repositories.NewProjectRepository()
	enrichmentRepo := repositories.NewEnrichmentRepository()
	noteRepo := repositories.NewNoteRepository()

	resolver := services.NewResolver(enrichmentRepo, logger)
	mergeService := services.NewMergeService(db, a.projectRepo, enrichmentRepo, noteRepo, logger)
	a.scanService = services.NewScanService(a.projectRepo, resolver, mergeService, logger)

	cleanup := func() {
		db.Close()
		logger.Sync() //nolint:errcheck
	}

	return database.SetScope(ctx, &database.Scope{Conn: db.Pool}), cleanup, nil
}

// newLogger builds the process logger. Logs go to stderr so report output on
// stdout stays machine-parseable under --json.
func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
