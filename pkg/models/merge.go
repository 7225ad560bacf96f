package models

import "time"

// MergeState is the set of fields written to an archived project when a
// merge is executed.
type MergeState struct {
	MergedInto string
	Reason     string
	Score      int
	MergedAt   time.Time
}

// MergeRecord is the audit artifact of one executed (or simulated) merge.
// Immutable once produced.
type MergeRecord struct {
	Keeper             string    `json:"keeper"`
	Archived           string    `json:"archived"`
	Score              int       `json:"score"`
	Signals            []string  `json:"signals"`
	Reason             string    `json:"reason"`
	Timestamp          time.Time `json:"timestamp"`
	EnrichmentMigrated []string  `json:"enrichment_migrated"`
}

// FlaggedPair is a candidate pair that scored above the noise floor but
// below the auto-merge threshold, retained for human review.
type FlaggedPair struct {
	IDA      string   `json:"id_a"`
	IDB      string   `json:"id_b"`
	Score    int      `json:"score"`
	Signals  []string `json:"signals"`
	TitleA   string   `json:"title_a"`
	TitleB   string   `json:"title_b"`
	AddressA string   `json:"address_a"`
	AddressB string   `json:"address_b"`
	Postcode string   `json:"postcode"`
}

// Match is one duplicate candidate found for a single project by the
// ingestion-time lookup path.
type Match struct {
	ProjectID string   `json:"project_id"`
	Score     int      `json:"score"`
	Signals   []string `json:"signals"`
}

// ScanResult is the outcome of one full deduplication pass.
type ScanResult struct {
	ActiveBefore int           `json:"active_before"`
	ActiveAfter  int           `json:"active_after"`
	AutoMerges   []MergeRecord `json:"auto_merges"`
	Flagged      []FlaggedPair `json:"flagged"`
	DryRun       bool          `json:"dry_run"`
}
