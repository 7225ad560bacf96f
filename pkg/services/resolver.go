package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/glenigan-pipeline/dedup-engine/pkg/models"
	"github.com/glenigan-pipeline/dedup-engine/pkg/repositories"
)

// MergeDecision is one auto-merge the resolver has committed to: the keeper
// survives, the archived project is folded into it.
type MergeDecision struct {
	Keeper   *models.Project
	Archived *models.Project
	Score    int
	Signals  []string
}

// Resolution is the outcome of resolving one pass of candidate pairs.
type Resolution struct {
	Merges  []MergeDecision
	Flagged []models.FlaggedPair
}

// Resolver decides which scored candidate pairs to auto-merge and which to
// flag for human review.
type Resolver struct {
	enrichmentRepo repositories.EnrichmentRepository
	logger         *zap.Logger
}

// NewResolver creates a new Resolver.
func NewResolver(enrichmentRepo repositories.EnrichmentRepository, logger *zap.Logger) *Resolver {
	return &Resolver{
		enrichmentRepo: enrichmentRepo,
		logger:         logger.Named("resolver"),
	}
}

type scoredPair struct {
	a, b    *models.Project
	score   int
	signals []string
}

// Resolve scores every candidate pair, discards pairs below the noise floor,
// and processes the rest greedily in descending score order. Within one pass
// no project is archived twice and no keeper is itself archived later: any
// pair touching an already-archived project is skipped. The greedy order is
// deliberate - when a project could transitively duplicate several others,
// the strongest pairwise evidence wins and weaker coincidental pairs are
// suppressed rather than double-merged.
//
// The archived set is local to this call; Resolve holds no state between
// passes and is safe to reuse.
func (r *Resolver) Resolve(ctx context.Context, pairs []CandidatePair, threshold int) (*Resolution, error) {
	scored := make([]scoredPair, 0, len(pairs))
	for _, pair := range pairs {
		score, signals := ScorePair(pair.A, pair.B)
		if score >= NoiseFloor {
			scored = append(scored, scoredPair{a: pair.A, b: pair.B, score: score, signals: signals})
		}
	}

	// Stable sort keeps encounter order for equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	r.logger.Debug("Scored candidate pairs",
		zap.Int("candidates", len(pairs)),
		zap.Int("above_floor", len(scored)))

	resolution := &Resolution{Merges: []MergeDecision{}, Flagged: []models.FlaggedPair{}}
	archived := make(map[string]bool)

	for _, sp := range scored {
		if archived[sp.a.ProjectID] || archived[sp.b.ProjectID] {
			continue
		}

		if sp.score < threshold {
			resolution.Flagged = append(resolution.Flagged, models.FlaggedPair{
				IDA:      sp.a.ProjectID,
				IDB:      sp.b.ProjectID,
				Score:    sp.score,
				Signals:  sp.signals,
				TitleA:   sp.a.Title,
				TitleB:   sp.b.Title,
				AddressA: sp.a.AddressFull,
				AddressB: sp.b.AddressFull,
				Postcode: sp.a.Postcode,
			})
			continue
		}

		keeper, loser, err := r.pickKeeper(ctx, sp.a, sp.b)
		if err != nil {
			return nil, err
		}

		archived[loser.ProjectID] = true
		resolution.Merges = append(resolution.Merges, MergeDecision{
			Keeper:   keeper,
			Archived: loser,
			Score:    sp.score,
			Signals:  sp.signals,
		})
	}

	return resolution, nil
}

// pickKeeper selects the surviving project of a merged pair. The higher
// enrichment classification wins outright; on a tie (including both
// unclassified) the project with the lexicographically greater import
// timestamp wins - fresher data is preferred over arbitrary identifier order.
func (r *Resolver) pickKeeper(ctx context.Context, a, b *models.Project) (keeper, loser *models.Project, err error) {
	clsA, err := r.enrichmentRepo.Classification(ctx, a.ProjectID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load classification for %s: %w", a.ProjectID, err)
	}
	clsB, err := r.enrichmentRepo.Classification(ctx, b.ProjectID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load classification for %s: %w", b.ProjectID, err)
	}

	rankA := models.ClassificationRank(clsA)
	rankB := models.ClassificationRank(clsB)

	switch {
	case rankA > rankB:
		return a, b, nil
	case rankB > rankA:
		return b, a, nil
	case a.ImportedAt >= b.ImportedAt:
		return a, b, nil
	default:
		return b, a, nil
	}
}
