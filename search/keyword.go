package search

import "strings"

// KeywordOverlap scores lexical overlap between a query and a note text.
// The query is lowercased and split on whitespace into unique terms; each
// term counts as a hit when it occurs as a substring of the lowercased
// text, so partial-word matches count ("diabet" matches "diabetic").
// Returns hits/terms in [0,1], or 0 for a query with no terms.
func KeywordOverlap(query, text string) float64 {
	terms := uniqueTerms(query)
	if len(terms) == 0 {
		return 0
	}

	lowered := strings.ToLower(text)
	hits := 0
	for term := range terms {
		if strings.Contains(lowered, term) {
			hits++
		}
	}

	return float64(hits) / float64(len(terms))
}

// uniqueTerms lowercases text and splits it into a set of whitespace-delimited terms
func uniqueTerms(text string) map[string]bool {
	words := strings.Fields(strings.ToLower(text))
	terms := make(map[string]bool, len(words))
	for _, word := range words {
		terms[word] = true
	}
	return terms
}
