package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/glenigan-pipeline/dedup-engine/pkg/models"
)

// Scoring constants. These are heuristic values tuned against the live
// dataset, not validated optima; the auto-merge threshold is overridable at
// the CLI, the rest are fixed here.
const (
	// NoiseFloor is the minimum score worth reporting at all. Pairs below
	// it are discarded without flagging.
	NoiseFloor = 40

	// DefaultAutoMergeThreshold is the score at or above which a pair is
	// consolidated without human review.
	DefaultAutoMergeThreshold = 70

	scoreCap = 100

	weightPlanningRef   = 40
	weightPPReference   = 35
	weightPostcode      = 30
	weightAddressStrong = 25
	weightAddressWeak   = 15
	weightTitleStrong   = 20
	weightTitleWeak     = 10
	weightComboBonus    = 10
	weightValueClose    = 10
	weightValueBothZero = 5
	weightTown          = 5

	addressStrongOverlap = 0.6
	addressWeakOverlap   = 0.4
	titleStrongOverlap   = 0.5
	titleWeakOverlap     = 0.3
	valueProximityRatio  = 0.2

	comboMinSharedTokens = 2
)

// ScorePair scores the likelihood that two projects represent the same
// physical development. The score is a sum of independent additive signals
// capped at 100 - agreement adds confidence, missing data never subtracts.
// Returns the score and a human-readable signal trail in evaluation order.
//
// ScorePair is a pure function and symmetric: ScorePair(a, b) and
// ScorePair(b, a) always produce the same score.
func ScorePair(a, b *models.Project) (int, []string) {
	score := 0
	signals := []string{}

	// Signal 1: same planning reference issued by the same authority.
	refA := strings.TrimSpace(a.PlanningRef)
	refB := strings.TrimSpace(b.PlanningRef)
	authA := strings.ToLower(strings.TrimSpace(a.PlanningAuthority))
	authB := strings.ToLower(strings.TrimSpace(b.PlanningAuthority))
	if refA != "" && refB != "" && refA != "N/A" && refB != "N/A" &&
		authA != "" && authB != "" && refA == refB && authA == authB {
		score += weightPlanningRef
		signals = append(signals, fmt.Sprintf("ref:%s@%s +%d", refA, authA, weightPlanningRef))
	}

	// Signal 2: same secondary (planning portal) reference.
	ppA := strings.TrimSpace(a.PPReference)
	ppB := strings.TrimSpace(b.PPReference)
	if ppA != "" && ppB != "" && ppA == ppB {
		score += weightPPReference
		signals = append(signals, fmt.Sprintf("pp:%s +%d", ppA, weightPPReference))
	}

	// Signal 3: same canonical postcode.
	strongLocation := false
	pcA := NormalizePostcode(a.Postcode)
	pcB := NormalizePostcode(b.Postcode)
	if pcA != "" && pcB != "" && pcA == pcB {
		score += weightPostcode
		signals = append(signals, fmt.Sprintf("postcode:%s +%d", pcA, weightPostcode))
		strongLocation = true
	}

	// Signal 4: address token overlap, strong tier then weak tier.
	addrOverlap := TokenOverlap(a.AddressFull, b.AddressFull)
	if addrOverlap >= addressStrongOverlap {
		score += weightAddressStrong
		signals = append(signals, fmt.Sprintf("address:%.0f%% +%d", addrOverlap*100, weightAddressStrong))
		strongLocation = true
	} else if addrOverlap >= addressWeakOverlap {
		score += weightAddressWeak
		signals = append(signals, fmt.Sprintf("address:%.0f%% +%d", addrOverlap*100, weightAddressWeak))
	}

	// Signal 5: title token overlap, strong tier then weak tier.
	titleOverlap := TokenOverlap(a.Title, b.Title)
	if titleOverlap >= titleStrongOverlap {
		score += weightTitleStrong
		signals = append(signals, fmt.Sprintf("title:%.0f%% +%d", titleOverlap*100, weightTitleStrong))
	} else if titleOverlap >= titleWeakOverlap {
		score += weightTitleWeak
		signals = append(signals, fmt.Sprintf("title:%.0f%% +%d", titleOverlap*100, weightTitleWeak))
	}

	// Signal 5b: combo bonus. Location must already be strong before title
	// content adds confidence, so generic vocabulary alone cannot inflate
	// the score; terse titles on co-located projects under-count otherwise.
	if strongLocation {
		if shared := MeaningfulShared(a.Title, b.Title); len(shared) >= comboMinSharedTokens {
			score += weightComboBonus
			signals = append(signals, fmt.Sprintf("combo:%s +%d", strings.Join(shared, "+"), weightComboBonus))
		}
	}

	// Signal 6: contract value within 20%, or both unknown. Two records
	// both missing a value is weak supporting evidence, not strong.
	valA, valB := a.ValueNumeric, b.ValueNumeric
	if valA > 0 && valB > 0 {
		diff := math.Abs(valA - valB)
		if maxVal := math.Max(valA, valB); diff <= valueProximityRatio*maxVal {
			score += weightValueClose
			signals = append(signals, fmt.Sprintf("value:~%.0f%%diff +%d", diff/maxVal*100, weightValueClose))
		}
	} else if valA == 0 && valB == 0 {
		score += weightValueBothZero
		signals = append(signals, fmt.Sprintf("value:both_zero +%d", weightValueBothZero))
	}

	// Signal 7: same town.
	townA := strings.ToLower(strings.TrimSpace(a.Town))
	townB := strings.ToLower(strings.TrimSpace(b.Town))
	if townA != "" && townB != "" && townA == townB {
		score += weightTown
		signals = append(signals, fmt.Sprintf("town:%s +%d", townA, weightTown))
	}

	if score > scoreCap {
		score = scoreCap
	}
	return score, signals
}
