package services

import (
	"context"
	"time"

	"github.com/glenigan-pipeline/dedup-engine/pkg/apperrors"
	"github.com/glenigan-pipeline/dedup-engine/pkg/models"
)

// In-memory fakes for the storage collaborators, used by the unit tests.

type fakeEnrichmentRepo struct {
	classifications map[string]string
	migrateResult   []string
	migrateCalls    [][2]string
}

func (f *fakeEnrichmentRepo) Classification(_ context.Context, projectID string) (string, error) {
	return f.classifications[projectID], nil
}

func (f *fakeEnrichmentRepo) MigrateSatellites(_ context.Context, keeperID, archivedID string) ([]string, error) {
	f.migrateCalls = append(f.migrateCalls, [2]string{keeperID, archivedID})
	return f.migrateResult, nil
}

type fakeProjectRepo struct {
	projects        []*models.Project
	markMergedCalls int
}

func (f *fakeProjectRepo) ListActive(_ context.Context) ([]*models.Project, error) {
	var active []*models.Project
	for _, p := range f.projects {
		if p.IsActive() {
			active = append(active, p)
		}
	}
	return active, nil
}

func (f *fakeProjectRepo) Get(_ context.Context, id string) (*models.Project, error) {
	for _, p := range f.projects {
		if p.ProjectID == id {
			return p, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeProjectRepo) CountActive(_ context.Context) (int, error) {
	count := 0
	for _, p := range f.projects {
		if p.IsActive() {
			count++
		}
	}
	return count, nil
}

func (f *fakeProjectRepo) MarkMerged(_ context.Context, id string, state models.MergeState) error {
	f.markMergedCalls++
	for _, p := range f.projects {
		if p.ProjectID == id {
			keeper := state.MergedInto
			p.MergedInto = &keeper
			p.MergeReason = &state.Reason
			score := state.Score
			p.MergeScore = &score
			at := state.MergedAt
			p.MergedAt = &at
			return nil
		}
	}
	return apperrors.ErrNotFound
}

type fakeNoteRepo struct {
	notes []string
}

func (f *fakeNoteRepo) Append(_ context.Context, projectID, note string) error {
	f.notes = append(f.notes, projectID+": "+note)
	return nil
}

// fakeMergeService archives the loser in the backing project repo unless
// simulating, mirroring the real executor's observable effect.
type fakeMergeService struct {
	projectRepo *fakeProjectRepo
	executed    []string
}

func (f *fakeMergeService) ExecuteMerge(ctx context.Context, keeperID, archivedID string, score int, signals []string, simulate bool) (*models.MergeRecord, error) {
	record := &models.MergeRecord{
		Keeper:             keeperID,
		Archived:           archivedID,
		Score:              score,
		Signals:            signals,
		Timestamp:          time.Now().UTC(),
		EnrichmentMigrated: []string{},
	}
	if simulate {
		return record, nil
	}

	f.executed = append(f.executed, archivedID+"->"+keeperID)
	err := f.projectRepo.MarkMerged(ctx, archivedID, models.MergeState{
		MergedInto: keeperID,
		Score:      score,
		MergedAt:   record.Timestamp,
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}
