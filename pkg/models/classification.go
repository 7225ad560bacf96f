package models

// Classification statuses assigned by the enrichment pipeline.
// Precedence for keeper selection: Qualified (highest) > Maybe > Rejected > none.
const (
	ClassificationQualified = "QUALIFIED"
	ClassificationMaybe     = "MAYBE"
	ClassificationRejected  = "REJECTED"
)

// ClassificationRank maps a classification status to its numeric rank for
// keeper selection. Unknown or missing statuses rank lowest.
func ClassificationRank(status string) int {
	switch status {
	case ClassificationQualified:
		return 3
	case ClassificationMaybe:
		return 2
	case ClassificationRejected:
		return 1
	default:
		return 0
	}
}
