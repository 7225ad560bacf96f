package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glenigan-pipeline/dedup-engine/pkg/models"
)

func TestFindCandidatePairsNoSharedKeys(t *testing.T) {
	projects := []*models.Project{
		{ProjectID: "A", Postcode: "AB1 2CD", Town: "Northville"},
		{ProjectID: "B", Postcode: "XY9 8ZZ", Town: "Southton"},
	}
	assert.Empty(t, FindCandidatePairs(projects))
}

func TestFindCandidatePairsSharedPostcode(t *testing.T) {
	projects := []*models.Project{
		{ProjectID: "A", Postcode: "AB1 2CD", Town: "Northville"},
		{ProjectID: "B", Postcode: "ab12cd", Town: "Southton"},
	}
	pairs := FindCandidatePairs(projects)
	require.Len(t, pairs, 1)
	assert.Equal(t, "A", pairs[0].A.ProjectID)
	assert.Equal(t, "B", pairs[0].B.ProjectID)
}

func TestFindCandidatePairsSharedTownOnly(t *testing.T) {
	projects := []*models.Project{
		{ProjectID: "A", Town: "Anytown"},
		{ProjectID: "B", Town: "ANYTOWN"},
	}
	pairs := FindCandidatePairs(projects)
	assert.Len(t, pairs, 1)
}

func TestFindCandidatePairsBothKeysEmitOnce(t *testing.T) {
	// Sharing postcode and town must not duplicate the pair.
	projects := []*models.Project{
		{ProjectID: "A", Postcode: "AB1 2CD", Town: "Anytown"},
		{ProjectID: "B", Postcode: "AB12CD", Town: "anytown"},
	}
	pairs := FindCandidatePairs(projects)
	assert.Len(t, pairs, 1)
}

func TestFindCandidatePairsNullKeysExcluded(t *testing.T) {
	// A record with neither postcode nor town never enters blocking, even
	// alongside records that would otherwise absorb it.
	projects := []*models.Project{
		{ProjectID: "A", Postcode: "Not Available", Town: ""},
		{ProjectID: "B", Postcode: "Not Available", Town: ""},
		{ProjectID: "C", Postcode: "AB1 2CD", Town: "Anytown"},
	}
	assert.Empty(t, FindCandidatePairs(projects))
}

func TestFindCandidatePairsBlockExpansion(t *testing.T) {
	// Three records in one postcode block: all three unordered pairs.
	projects := []*models.Project{
		{ProjectID: "A", Postcode: "AB1 2CD"},
		{ProjectID: "B", Postcode: "AB1 2CD"},
		{ProjectID: "C", Postcode: "AB1 2CD"},
	}
	pairs := FindCandidatePairs(projects)
	assert.Len(t, pairs, 3)

	seen := map[string]bool{}
	for _, p := range pairs {
		seen[pairKey(p.A.ProjectID, p.B.ProjectID)] = true
	}
	assert.Len(t, seen, 3, "pairs must be distinct")
}

func TestFindCandidatePairsDeterministicOrder(t *testing.T) {
	projects := []*models.Project{
		{ProjectID: "A", Postcode: "AB1 2CD", Town: "Anytown"},
		{ProjectID: "B", Postcode: "XY9 8ZZ", Town: "Anytown"},
		{ProjectID: "C", Postcode: "AB1 2CD", Town: "Otherton"},
		{ProjectID: "D", Postcode: "XY9 8ZZ", Town: "Otherton"},
	}

	first := FindCandidatePairs(projects)
	for i := 0; i < 10; i++ {
		again := FindCandidatePairs(projects)
		require.Equal(t, len(first), len(again))
		for j := range first {
			assert.Equal(t, first[j].A.ProjectID, again[j].A.ProjectID)
			assert.Equal(t, first[j].B.ProjectID, again[j].B.ProjectID)
		}
	}
}

func TestPairKeyOrderIndependent(t *testing.T) {
	assert.Equal(t, pairKey("A", "B"), pairKey("B", "A"))
	assert.NotEqual(t, pairKey("A", "B"), pairKey("A", "C"))
}
