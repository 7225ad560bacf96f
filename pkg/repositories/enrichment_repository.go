package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/glenigan-pipeline/dedup-engine/pkg/database"
)

// SatelliteTables lists the enrichment categories owned by the enrichment
// pipeline, each keyed by project_id. The dedup engine only ever re-keys
// rows in these tables; it never reads or writes their payloads.
var SatelliteTables = []string{
	"enrichment_classification",
	"enrichment_portal",
	"enrichment_web",
	"enrichment_contacts",
	"enrichment_scoring",
}

// EnrichmentRepository provides read access to enrichment classification and
// the satellite re-keying needed during a merge.
type EnrichmentRepository interface {
	// Classification returns the classification status for a project, or
	// the empty string when the project has not been classified.
	Classification(ctx context.Context, projectID string) (string, error)
	// MigrateSatellites re-keys the archived project's enrichment rows to
	// the keeper, one category at a time, skipping any category where the
	// keeper already has data. Returns the names of migrated categories.
	MigrateSatellites(ctx context.Context, keeperID, archivedID string) ([]string, error)
}

// enrichmentRepository implements EnrichmentRepository using PostgreSQL.
type enrichmentRepository struct{}

// NewEnrichmentRepository creates a new enrichment repository.
func NewEnrichmentRepository() EnrichmentRepository {
	return &enrichmentRepository{}
}

// Classification returns the enrichment classification status for a project.
func (r *enrichmentRepository) Classification(ctx context.Context, projectID string) (string, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return "", fmt.Errorf("no database scope in context")
	}

	var status string
	err := scope.Conn.QueryRow(ctx,
		"SELECT status FROM enrichment_classification WHERE project_id = $1",
		projectID).Scan(&status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil // not classified
		}
		return "", fmt.Errorf("failed to get classification: %w", err)
	}

	return status, nil
}

// MigrateSatellites moves enrichment data from the archived project to the
// keeper. The keeper's own enrichment always wins: a category is migrated
// only when the archived project has rows and the keeper has none.
func (r *enrichmentRepository) MigrateSatellites(ctx context.Context, keeperID, archivedID string) ([]string, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	migrated := []string{}
	for _, table := range SatelliteTables {
		// Table names come from the fixed SatelliteTables list, never
		// from input, so interpolation is safe here.
		archivedHas, err := hasRows(ctx, scope.Conn, table, archivedID)
		if err != nil {
			return nil, err
		}
		if !archivedHas {
			continue
		}

		keeperHas, err := hasRows(ctx, scope.Conn, table, keeperID)
		if err != nil {
			return nil, err
		}
		if keeperHas {
			continue
		}

		query := fmt.Sprintf("UPDATE %s SET project_id = $1 WHERE project_id = $2", table)
		if _, err := scope.Conn.Exec(ctx, query, keeperID, archivedID); err != nil {
			return nil, fmt.Errorf("failed to migrate %s: %w", table, err)
		}
		migrated = append(migrated, table)
	}

	return migrated, nil
}

func hasRows(ctx context.Context, conn database.Querier, table, projectID string) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE project_id = $1)", table)

	var exists bool
	if err := conn.QueryRow(ctx, query, projectID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check %s for %s: %w", table, projectID, err)
	}
	return exists, nil
}

// Ensure enrichmentRepository implements EnrichmentRepository at compile time.
var _ EnrichmentRepository = (*enrichmentRepository)(nil)
