//go:build integration

package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glenigan-pipeline/dedup-engine/pkg/models"
	"github.com/glenigan-pipeline/dedup-engine/pkg/testhelpers"
)

func insertClassification(ctx context.Context, t *testing.T, testDB *testhelpers.TestDB, projectID, status string) {
	t.Helper()
	_, err := testDB.DB.Pool.Exec(ctx,
		"INSERT INTO enrichment_classification (project_id, status) VALUES ($1, $2)",
		projectID, status)
	require.NoError(t, err)
}

func insertPortal(ctx context.Context, t *testing.T, testDB *testhelpers.TestDB, projectID string) {
	t.Helper()
	_, err := testDB.DB.Pool.Exec(ctx,
		"INSERT INTO enrichment_portal (project_id) VALUES ($1)", projectID)
	require.NoError(t, err)
}

func TestEnrichmentRepository_Classification(t *testing.T) {
	ctx, testDB := scopedContext(t)
	defer deleteProjects(ctx, t, testDB, "en-cls-1", "en-cls-2")

	insertProject(ctx, t, testDB, &models.Project{ProjectID: "en-cls-1"})
	insertProject(ctx, t, testDB, &models.Project{ProjectID: "en-cls-2"})
	insertClassification(ctx, t, testDB, "en-cls-1", models.ClassificationQualified)

	repo := NewEnrichmentRepository()

	status, err := repo.Classification(ctx, "en-cls-1")
	require.NoError(t, err)
	assert.Equal(t, models.ClassificationQualified, status)

	status, err = repo.Classification(ctx, "en-cls-2")
	require.NoError(t, err)
	assert.Empty(t, status, "unclassified project yields empty status")
}

func TestEnrichmentRepository_MigrateSatellites(t *testing.T) {
	ctx, testDB := scopedContext(t)
	defer deleteProjects(ctx, t, testDB, "en-mig-k", "en-mig-a")

	insertProject(ctx, t, testDB, &models.Project{ProjectID: "en-mig-k"})
	insertProject(ctx, t, testDB, &models.Project{ProjectID: "en-mig-a"})

	// Keeper already classified; archived brings its own classification plus
	// portal data the keeper lacks.
	insertClassification(ctx, t, testDB, "en-mig-k", models.ClassificationQualified)
	insertClassification(ctx, t, testDB, "en-mig-a", models.ClassificationMaybe)
	insertPortal(ctx, t, testDB, "en-mig-a")

	repo := NewEnrichmentRepository()
	migrated, err := repo.MigrateSatellites(ctx, "en-mig-k", "en-mig-a")
	require.NoError(t, err)
	assert.Equal(t, []string{"enrichment_portal"}, migrated)

	// Keeper keeps its own classification.
	status, err := repo.Classification(ctx, "en-mig-k")
	require.NoError(t, err)
	assert.Equal(t, models.ClassificationQualified, status)

	// Portal rows now belong to the keeper.
	var count int
	require.NoError(t, testDB.DB.Pool.QueryRow(ctx,
		"SELECT count(*) FROM enrichment_portal WHERE project_id = $1", "en-mig-k").Scan(&count))
	assert.Equal(t, 1, count)
	require.NoError(t, testDB.DB.Pool.QueryRow(ctx,
		"SELECT count(*) FROM enrichment_portal WHERE project_id = $1", "en-mig-a").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestEnrichmentRepository_MigrateSatellitesNothingToMove(t *testing.T) {
	ctx, testDB := scopedContext(t)
	defer deleteProjects(ctx, t, testDB, "en-nop-k", "en-nop-a")

	insertProject(ctx, t, testDB, &models.Project{ProjectID: "en-nop-k"})
	insertProject(ctx, t, testDB, &models.Project{ProjectID: "en-nop-a"})

	repo := NewEnrichmentRepository()
	migrated, err := repo.MigrateSatellites(ctx, "en-nop-k", "en-nop-a")
	require.NoError(t, err)
	assert.Empty(t, migrated)
}
