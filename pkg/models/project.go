package models

import "time"

// Project represents one captured construction/planning listing as imported
// from the upstream feed. Stored in the projects table.
//
// Projects are never physically deleted: when a project is identified as a
// duplicate it is archived by setting MergedInto to the keeper's identifier.
type Project struct {
	ProjectID         string  `json:"project_id"`
	Title             string  `json:"title"`
	AddressFull       string  `json:"address_full"`
	Postcode          string  `json:"postcode"` // raw as imported, may be "Not Available"
	Town              string  `json:"town"`
	PlanningRef       string  `json:"planning_ref"`       // regulatory reference, may be "N/A"
	PlanningAuthority string  `json:"planning_authority"` // authority the reference was issued by
	PPReference       string  `json:"pp_reference"`       // secondary reference code
	ValueNumeric      float64 `json:"value_numeric"`      // contract value, 0 when unknown
	ImportedAt        string  `json:"imported_at"`        // ISO-8601 text, lexicographically ordered

	// Merge state. A non-nil MergedInto means the project is archived and
	// must never act as a keeper or enter another scan.
	MergedInto  *string    `json:"merged_into,omitempty"`
	MergeReason *string    `json:"merge_reason,omitempty"`
	MergeScore  *int       `json:"merge_score,omitempty"`
	MergedAt    *time.Time `json:"merged_at,omitempty"`
}

// IsActive reports whether the project has not been merged away.
func (p *Project) IsActive() bool {
	return p.MergedInto == nil
}
