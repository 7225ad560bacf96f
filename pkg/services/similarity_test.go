package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenOverlapIdentity(t *testing.T) {
	inputs := []string{
		"45 Mill Lane",
		"Erection of two storey extension",
		"Land adjacent to The Old Vicarage, Church Street",
	}
	for _, in := range inputs {
		assert.Equal(t, 1.0, TokenOverlap(in, in), "self-overlap of %q", in)
	}
}

func TestTokenOverlapSymmetry(t *testing.T) {
	a := "Erection of 4 dwellings at Mill Lane"
	b := "4 new dwellings, Mill Lane, Anytown"
	assert.Equal(t, TokenOverlap(a, b), TokenOverlap(b, a))
}

func TestTokenOverlapEmptySides(t *testing.T) {
	assert.Equal(t, 0.0, TokenOverlap("", "Mill Lane"))
	assert.Equal(t, 0.0, TokenOverlap("Mill Lane", ""))
	assert.Equal(t, 0.0, TokenOverlap("", ""))
	// Noise-only text tokenizes to nothing and must not divide by zero.
	assert.Equal(t, 0.0, TokenOverlap("the and of", "Mill Lane"))
}

func TestTokenOverlapPartial(t *testing.T) {
	// {mill, lane} vs {mill, road}: intersection 1, union 3.
	got := TokenOverlap("Mill Lane", "Mill Road")
	assert.InDelta(t, 1.0/3.0, got, 1e-9)
}

func TestMeaningfulShared(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected []string
	}{
		{
			name:     "generic construction words excluded",
			a:        "New build extension at Mill Farm",
			b:        "Extension and new build, Mill Farm",
			expected: []string{"farm", "mill"},
		},
		{
			name:     "no shared tokens",
			a:        "Barn conversion",
			b:        "School refurbishment",
			expected: []string{},
		},
		{
			name:     "only generic shared",
			a:        "Proposed new extension",
			b:        "New extension proposed",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MeaningfulShared(tt.a, tt.b))
		})
	}
}

func TestMeaningfulSharedSorted(t *testing.T) {
	a := "Vicarage Church Mill Lane"
	b := "Mill Church Lane Vicarage"
	assert.Equal(t, []string{"church", "lane", "mill", "vicarage"}, MeaningfulShared(a, b))
}
