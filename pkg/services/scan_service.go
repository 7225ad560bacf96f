package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/glenigan-pipeline/dedup-engine/pkg/models"
	"github.com/glenigan-pipeline/dedup-engine/pkg/repositories"
)

// ScanService is the batch entry point of the dedup engine: it snapshots the
// active project set, generates candidate pairs, resolves them and executes
// the resulting merges.
type ScanService interface {
	// FullScan runs one deduplication pass. With dryRun true no storage is
	// mutated; the result reports what would have happened.
	FullScan(ctx context.Context, threshold int, dryRun bool) (*models.ScanResult, error)
	// CheckProject scores one project against every other active project,
	// returning matches at or above the noise floor sorted by descending
	// score. Returns apperrors.ErrNotFound for an unknown identifier.
	CheckProject(ctx context.Context, projectID string) (*models.Project, []models.Match, error)
}

type scanService struct {
	projectRepo  repositories.ProjectRepository
	resolver     *Resolver
	mergeService MergeService
	logger       *zap.Logger
}

// NewScanService creates a new ScanService.
func NewScanService(
	projectRepo repositories.ProjectRepository,
	resolver *Resolver,
	mergeService MergeService,
	logger *zap.Logger,
) ScanService {
	return &scanService{
		projectRepo:  projectRepo,
		resolver:     resolver,
		mergeService: mergeService,
		logger:       logger.Named("scan"),
	}
}

var _ ScanService = (*scanService)(nil)

func (s *scanService) FullScan(ctx context.Context, threshold int, dryRun bool) (*models.ScanResult, error) {
	before, err := s.projectRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	projects, err := s.projectRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	pairs := FindCandidatePairs(projects)
	s.logger.Info("Generated candidate pairs",
		zap.Int("active_projects", len(projects)),
		zap.Int("candidate_pairs", len(pairs)))

	resolution, err := s.resolver.Resolve(ctx, pairs, threshold)
	if err != nil {
		return nil, err
	}

	merges := make([]models.MergeRecord, 0, len(resolution.Merges))
	for _, decision := range resolution.Merges {
		record, err := s.mergeService.ExecuteMerge(ctx,
			decision.Keeper.ProjectID, decision.Archived.ProjectID,
			decision.Score, decision.Signals, dryRun)
		if err != nil {
			return nil, fmt.Errorf("failed to merge %s into %s: %w",
				decision.Archived.ProjectID, decision.Keeper.ProjectID, err)
		}
		merges = append(merges, *record)
	}

	after, err := s.projectRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	return &models.ScanResult{
		ActiveBefore: before,
		ActiveAfter:  after,
		AutoMerges:   merges,
		Flagged:      resolution.Flagged,
		DryRun:       dryRun,
	}, nil
}

func (s *scanService) CheckProject(ctx context.Context, projectID string) (*models.Project, []models.Match, error) {
	project, err := s.projectRepo.Get(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}

	actives, err := s.projectRepo.ListActive(ctx)
	if err != nil {
		return nil, nil, err
	}

	matches := []models.Match{}
	for _, existing := range actives {
		if existing.ProjectID == projectID {
			continue
		}
		score, signals := ScorePair(project, existing)
		if score >= NoiseFloor {
			matches = append(matches, models.Match{
				ProjectID: existing.ProjectID,
				Score:     score,
				Signals:   signals,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return project, matches, nil
}
