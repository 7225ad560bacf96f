package services

import (
	"strings"
	"unicode"
)

// Static lookup tables for text normalization. Loaded once, never mutated.

// noiseWords are articles, prepositions and placeholder filler that carry no
// information when comparing titles or addresses.
var noiseWords = map[string]bool{
	"the": true, "and": true, "of": true, "a": true, "an": true,
	"in": true, "at": true, "to": true, "not": true, "available": true,
	"for": true, "on": true,
}

// abbreviations expands common street-suffix shorthand so "12 High St" and
// "12 High Street" tokenize identically.
var abbreviations = map[string]string{
	"rd": "road", "st": "street", "ave": "avenue", "dr": "drive",
	"ln": "lane", "ct": "court", "pl": "place", "sq": "square",
	"cres": "crescent", "cl": "close", "gdns": "gardens", "pk": "park",
	"hse": "house", "bldg": "building", "bldgs": "buildings",
}

// genericTitleWords are construction vocabulary shared by unrelated projects
// ("new", "extension", ...). They count toward token overlap ratios but are
// excluded from the meaningful-shared-token signal.
var genericTitleWords = map[string]bool{
	"alteration": true, "conversion": true, "refurbishment": true,
	"new": true, "build": true, "extension": true, "demolition": true,
	"renovation": true, "work": true, "erection": true,
	"construction": true, "replacement": true, "installation": true,
	"removal": true, "repair": true, "improvement": true, "change": true,
	"use": true, "proposed": true, "existing": true,
}

// deplural strips a trailing "s" unless the token is short or ends in a
// double "s" ("gardens" -> "garden", but "cross" stays "cross").
func deplural(token string) string {
	n := len(token)
	if n > 3 && token[n-1] == 's' && token[n-2] != 's' {
		return token[:n-1]
	}
	return token
}

// isTokenSeparator reports whether r splits tokens: whitespace plus the
// punctuation commonly found in addresses and planning titles.
func isTokenSeparator(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	switch r {
	case '/', '(', ')', '-', ',', '.', ';', ':', '&':
		return true
	}
	return false
}

// Tokenize splits text into a set of normalized tokens: lower-cased, noise
// words dropped, street abbreviations expanded, naively depluralized.
// Duplicate tokens collapse; order is irrelevant. Pure function of its input.
func Tokenize(text string) map[string]bool {
	result := make(map[string]bool)
	if text == "" {
		return result
	}

	for _, t := range strings.FieldsFunc(strings.ToLower(text), isTokenSeparator) {
		if t == "" || noiseWords[t] {
			continue
		}
		if full, ok := abbreviations[t]; ok {
			t = full
		}
		result[deplural(t)] = true
	}
	return result
}

// NormalizePostcode strips all whitespace and upper-cases a postcode for
// comparison. Returns the empty string for absent or placeholder input.
func NormalizePostcode(pc string) string {
	if pc == "" || pc == "Not Available" {
		return ""
	}

	var b strings.Builder
	for _, r := range strings.ToUpper(pc) {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
