package services

import (
	"strings"

	"github.com/glenigan-pipeline/dedup-engine/pkg/models"
)

// CandidatePair is an unordered pair of active projects sharing at least one
// blocking key. Ephemeral: pairs exist only within one scan.
type CandidatePair struct {
	A *models.Project
	B *models.Project
}

// blockIndex groups projects by a key while remembering first-encounter key
// order. Go map iteration order varies between runs, which would make equal
// score tie-breaking nondeterministic; the ordered key slice keeps repeated
// scans (and dry-run previews) byte-for-byte reproducible.
type blockIndex struct {
	keys   []string
	groups map[string][]*models.Project
}

func newBlockIndex() *blockIndex {
	return &blockIndex{groups: make(map[string][]*models.Project)}
}

func (ix *blockIndex) add(key string, p *models.Project) {
	if _, seen := ix.groups[key]; !seen {
		ix.keys = append(ix.keys, key)
	}
	ix.groups[key] = append(ix.groups[key], p)
}

// FindCandidatePairs generates candidate pairs by blocking on canonical
// postcode and lower-cased town. Only projects sharing a postcode or a town
// are ever compared, which bounds cost by block sizes instead of n^2; two
// projects sharing neither key can never pair, an accepted recall trade-off.
// Each qualifying pair is emitted exactly once even when it shares both keys.
func FindCandidatePairs(projects []*models.Project) []CandidatePair {
	byPostcode := newBlockIndex()
	byTown := newBlockIndex()

	for _, p := range projects {
		if pc := NormalizePostcode(p.Postcode); pc != "" {
			byPostcode.add(pc, p)
		}
		if town := strings.ToLower(strings.TrimSpace(p.Town)); town != "" {
			byTown.add(town, p)
		}
	}

	seen := make(map[string]bool)
	var pairs []CandidatePair

	for _, ix := range []*blockIndex{byPostcode, byTown} {
		for _, key := range ix.keys {
			block := ix.groups[key]
			for i := 0; i < len(block); i++ {
				for j := i + 1; j < len(block); j++ {
					a, b := block[i], block[j]
					if seen[pairKey(a.ProjectID, b.ProjectID)] {
						continue
					}
					seen[pairKey(a.ProjectID, b.ProjectID)] = true
					pairs = append(pairs, CandidatePair{A: a, B: b})
				}
			}
		}
	}

	return pairs
}

// pairKey builds an order-independent dedup key for a pair of identifiers.
func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}
