// Package report renders scan results for operators, as plain text or JSON.
// Formatting only - all decisions were already made by the engine.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/glenigan-pipeline/dedup-engine/pkg/models"
	"github.com/glenigan-pipeline/dedup-engine/pkg/services"
)

// Modes reported to operators and machine consumers.
const (
	ModeDryRun   = "dry_run"
	ModeExecuted = "executed"
)

// Summary holds the headline counts of one scan.
type Summary struct {
	ProjectsBefore   int `json:"projects_before"`
	ProjectsAfter    int `json:"projects_after"`
	AutoMerged       int `json:"auto_merged"`
	FlaggedForReview int `json:"flagged_for_review"`
}

// Report is the presentation form of a scan result.
type Report struct {
	Timestamp  time.Time            `json:"timestamp"`
	Mode       string               `json:"mode"`
	Summary    Summary              `json:"summary"`
	AutoMerges []models.MergeRecord `json:"auto_merges"`
	Flagged    []models.FlaggedPair `json:"flagged"`
}

// FromScan builds a Report from a scan result.
func FromScan(result *models.ScanResult) *Report {
	mode := ModeExecuted
	if result.DryRun {
		mode = ModeDryRun
	}
	return &Report{
		Timestamp: time.Now().UTC(),
		Mode:      mode,
		Summary: Summary{
			ProjectsBefore:   result.ActiveBefore,
			ProjectsAfter:    result.ActiveAfter,
			AutoMerged:       len(result.AutoMerges),
			FlaggedForReview: len(result.Flagged),
		},
		AutoMerges: result.AutoMerges,
		Flagged:    result.Flagged,
	}
}

// JSON renders the report as indented JSON.
func (r *Report) JSON() (string, error) {
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	return string(out), nil
}

// Text renders the report for terminal output.
func (r *Report) Text(threshold int) string {
	var b strings.Builder

	mode := "EXECUTED"
	if r.Mode == ModeDryRun {
		mode = "DRY RUN"
	}
	fmt.Fprintf(&b, "=== DEDUPLICATION REPORT (%s) ===\n\n", mode)

	if len(r.AutoMerges) > 0 {
		label := "Auto-merged"
		if r.Mode == ModeDryRun {
			label = "Would auto-merge"
		}
		fmt.Fprintf(&b, "%s (score >= %d):\n", label, threshold)
		for _, m := range r.AutoMerges {
			fmt.Fprintf(&b, "  %s -> %s  score:%d  [%s]\n",
				m.Archived, m.Keeper, m.Score, strings.Join(m.Signals, " | "))
		}
		b.WriteString("\n")
	}

	if len(r.Flagged) > 0 {
		fmt.Fprintf(&b, "Flagged for review (score %d-%d):\n", services.NoiseFloor, threshold-1)
		for i, f := range r.Flagged {
			fmt.Fprintf(&b, "  %d. %q vs %q  score:%d  %s\n",
				i+1, f.TitleA, f.TitleB, f.Score, f.Postcode)
			fmt.Fprintf(&b, "     A: %s (%s)\n", f.IDA, truncate(f.AddressA, 50))
			fmt.Fprintf(&b, "     B: %s (%s)\n", f.IDB, truncate(f.AddressB, 50))
		}
		b.WriteString("\n")
	}

	if len(r.AutoMerges) == 0 && len(r.Flagged) == 0 {
		b.WriteString("No duplicates found.\n\n")
	}

	fmt.Fprintf(&b, "Active projects: %d -> %d\n",
		r.Summary.ProjectsBefore, r.Summary.ProjectsAfter)

	return b.String()
}

// MatchesJSON renders single-project matches as indented JSON.
func MatchesJSON(matches []models.Match) (string, error) {
	out, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal matches: %w", err)
	}
	return string(out), nil
}

// MatchesText renders single-project matches for terminal output. Matches at
// or above the threshold are labelled AUTO-MERGE, the rest REVIEW.
func MatchesText(projectID string, matches []models.Match, threshold int) string {
	if len(matches) == 0 {
		return fmt.Sprintf("No duplicates found for %s\n", projectID)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Matches for %s:\n", projectID)
	for _, m := range matches {
		action := "REVIEW"
		if m.Score >= threshold {
			action = "AUTO-MERGE"
		}
		fmt.Fprintf(&b, "  %s  score:%d  [%s]  %s\n",
			m.ProjectID, m.Score, action, strings.Join(m.Signals, " | "))
	}
	return b.String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
