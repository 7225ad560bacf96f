package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/glenigan-pipeline/dedup-engine/pkg/apperrors"
	"github.com/glenigan-pipeline/dedup-engine/pkg/database"
	"github.com/glenigan-pipeline/dedup-engine/pkg/models"
)

// ProjectRepository defines the interface for project data access.
type ProjectRepository interface {
	// ListActive returns every project that has not been merged away,
	// with all fields loaded.
	ListActive(ctx context.Context) ([]*models.Project, error)
	// Get retrieves a single project by identifier (active or archived).
	Get(ctx context.Context, id string) (*models.Project, error)
	// CountActive returns the number of active projects.
	CountActive(ctx context.Context) (int, error)
	// MarkMerged sets the merge-state fields on the archived project.
	MarkMerged(ctx context.Context, id string, state models.MergeState) error
}

// projectRepository implements ProjectRepository using PostgreSQL.
type projectRepository struct{}

// NewProjectRepository creates a new project repository.
func NewProjectRepository() ProjectRepository {
	return &projectRepository{}
}

const projectColumns = `
	project_id, title, address_full, postcode, town,
	planning_ref, planning_authority, pp_reference,
	COALESCE(value_numeric, 0), COALESCE(imported_at, ''),
	merged_into, merge_reason, merge_score, merged_at`

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ProjectID, &p.Title, &p.AddressFull, &p.Postcode, &p.Town,
		&p.PlanningRef, &p.PlanningAuthority, &p.PPReference,
		&p.ValueNumeric, &p.ImportedAt,
		&p.MergedInto, &p.MergeReason, &p.MergeScore, &p.MergedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListActive returns all projects with merged_into unset.
func (r *projectRepository) ListActive(ctx context.Context) ([]*models.Project, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE merged_into IS NULL
		ORDER BY project_id`

	rows, err := scope.Conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read project rows: %w", err)
	}

	return projects, nil
}

// Get retrieves a project by ID.
func (r *projectRepository) Get(ctx context.Context, id string) (*models.Project, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE project_id = $1`

	p, err := scanProject(scope.Conn.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return p, nil
}

// CountActive returns the number of projects with merged_into unset.
func (r *projectRepository) CountActive(ctx context.Context) (int, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return 0, fmt.Errorf("no database scope in context")
	}

	var count int
	err := scope.Conn.QueryRow(ctx,
		"SELECT COUNT(*) FROM projects WHERE merged_into IS NULL").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active projects: %w", err)
	}

	return count, nil
}

// MarkMerged archives a project by writing its merge-state fields.
// Refuses to archive a project that is already merged.
func (r *projectRepository) MarkMerged(ctx context.Context, id string, state models.MergeState) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no database scope in context")
	}

	query := `
		UPDATE projects
		SET merged_into = $2, merge_reason = $3, merge_score = $4, merged_at = $5
		WHERE project_id = $1 AND merged_into IS NULL`

	result, err := scope.Conn.Exec(ctx, query,
		id, state.MergedInto, state.Reason, state.Score, state.MergedAt)
	if err != nil {
		return fmt.Errorf("failed to mark project merged: %w", err)
	}

	if result.RowsAffected() == 0 {
		// Either the project does not exist or it is already archived.
		if _, getErr := r.Get(ctx, id); getErr != nil {
			return getErr
		}
		return apperrors.ErrAlreadyMerged
	}

	return nil
}

// Ensure projectRepository implements ProjectRepository at compile time.
var _ ProjectRepository = (*projectRepository)(nil)
