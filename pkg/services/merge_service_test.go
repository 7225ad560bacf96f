package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/glenigan-pipeline/dedup-engine/pkg/apperrors"
)

// The simulate path never touches storage, so it is exercised here without a
// database; the transactional path is covered by the integration tests.

func TestExecuteMergeSimulate(t *testing.T) {
	projectRepo := &fakeProjectRepo{}
	enrichment := &fakeEnrichmentRepo{}
	notes := &fakeNoteRepo{}
	svc := NewMergeService(nil, projectRepo, enrichment, notes, zap.NewNop())

	signals := []string{"ref:24/001@anytown council +40", "postcode:AB12CD +30"}
	record, err := svc.ExecuteMerge(context.Background(), "KEEP", "GONE", 70, signals, true)
	require.NoError(t, err)

	assert.Equal(t, "KEEP", record.Keeper)
	assert.Equal(t, "GONE", record.Archived)
	assert.Equal(t, 70, record.Score)
	assert.Equal(t, "ref:24/001@anytown council +40 | postcode:AB12CD +30", record.Reason)
	assert.Empty(t, record.EnrichmentMigrated, "simulation migrates nothing")
	assert.False(t, record.Timestamp.IsZero())

	assert.Zero(t, projectRepo.markMergedCalls, "simulation must not archive")
	assert.Empty(t, enrichment.migrateCalls, "simulation must not migrate satellites")
	assert.Empty(t, notes.notes, "simulation must not write notes")
}

func TestExecuteMergeRejectsSelfMerge(t *testing.T) {
	svc := NewMergeService(nil, &fakeProjectRepo{}, &fakeEnrichmentRepo{}, &fakeNoteRepo{}, zap.NewNop())

	_, err := svc.ExecuteMerge(context.Background(), "SAME", "SAME", 90, nil, true)
	assert.ErrorIs(t, err, apperrors.ErrSelfMerge)
}
