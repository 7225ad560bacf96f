package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/glenigan-pipeline/dedup-engine/pkg/apperrors"
	"github.com/glenigan-pipeline/dedup-engine/pkg/database"
	"github.com/glenigan-pipeline/dedup-engine/pkg/models"
	"github.com/glenigan-pipeline/dedup-engine/pkg/repositories"
)

// signalSeparator joins signal descriptions into the stored merge reason.
const signalSeparator = " | "

// MergeService applies a decided merge: migrates enrichment satellites to
// the keeper, archives the loser and leaves a CRM audit note.
type MergeService interface {
	// ExecuteMerge folds archivedID into keeperID. With simulate true it
	// returns the would-be MergeRecord without touching storage (the
	// migrated-satellite list stays empty). Otherwise satellite migration,
	// the archive flag and the audit note are written in one transaction -
	// either the merge fully applies or nothing changes.
	ExecuteMerge(ctx context.Context, keeperID, archivedID string, score int, signals []string, simulate bool) (*models.MergeRecord, error)
}

type mergeService struct {
	db             *database.DB
	projectRepo    repositories.ProjectRepository
	enrichmentRepo repositories.EnrichmentRepository
	noteRepo       repositories.NoteRepository
	logger         *zap.Logger
}

// NewMergeService creates a new MergeService.
func NewMergeService(
	db *database.DB,
	projectRepo repositories.ProjectRepository,
	enrichmentRepo repositories.EnrichmentRepository,
	noteRepo repositories.NoteRepository,
	logger *zap.Logger,
) MergeService {
	return &mergeService{
		db:             db,
		projectRepo:    projectRepo,
		enrichmentRepo: enrichmentRepo,
		noteRepo:       noteRepo,
		logger:         logger.Named("merge"),
	}
}

var _ MergeService = (*mergeService)(nil)

func (s *mergeService) ExecuteMerge(ctx context.Context, keeperID, archivedID string, score int, signals []string, simulate bool) (*models.MergeRecord, error) {
	if keeperID == archivedID {
		return nil, apperrors.ErrSelfMerge
	}

	now := time.Now().UTC()
	record := &models.MergeRecord{
		Keeper:             keeperID,
		Archived:           archivedID,
		Score:              score,
		Signals:            signals,
		Reason:             strings.Join(signals, signalSeparator),
		Timestamp:          now,
		EnrichmentMigrated: []string{},
	}

	if simulate {
		return record, nil
	}

	err := s.db.WithTx(ctx, func(txCtx context.Context) error {
		migrated, err := s.enrichmentRepo.MigrateSatellites(txCtx, keeperID, archivedID)
		if err != nil {
			return fmt.Errorf("failed to migrate enrichment: %w", err)
		}
		record.EnrichmentMigrated = migrated

		err = s.projectRepo.MarkMerged(txCtx, archivedID, models.MergeState{
			MergedInto: keeperID,
			Reason:     record.Reason,
			Score:      score,
			MergedAt:   now,
		})
		if err != nil {
			return err
		}

		note := fmt.Sprintf("DEDUP: Merged %s (score:%d). %s", archivedID, score, record.Reason)
		return s.noteRepo.Append(txCtx, keeperID, note)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Merged duplicate project",
		zap.String("keeper", keeperID),
		zap.String("archived", archivedID),
		zap.Int("score", score),
		zap.Strings("enrichment_migrated", record.EnrichmentMigrated))

	return record, nil
}
