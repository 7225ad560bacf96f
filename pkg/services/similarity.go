package services

import "sort"

// TokenOverlap returns the Jaccard similarity of the two texts' token sets:
// |intersection| / |union|, in [0,1]. Returns 0 when either token set is
// empty, so absent fields contribute nothing rather than erroring.
func TokenOverlap(a, b string) float64 {
	ta, tb := Tokenize(a), Tokenize(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0.0
	}

	intersection := 0
	for t := range ta {
		if tb[t] {
			intersection++
		}
	}

	union := len(ta) + len(tb) - intersection
	return float64(intersection) / float64(union)
}

// MeaningfulShared returns the tokens shared by a and b after excluding
// generic construction vocabulary, sorted for deterministic signal trails.
func MeaningfulShared(a, b string) []string {
	ta, tb := Tokenize(a), Tokenize(b)

	shared := []string{}
	for t := range ta {
		if tb[t] && !genericTitleWords[t] {
			shared = append(shared, t)
		}
	}
	sort.Strings(shared)
	return shared
}
