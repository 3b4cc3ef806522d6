package patterns

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/blackwell-systems/navwatch/internal/events"
)

// Search analyzer defaults.
const (
	DefaultMaxSearchTerms = 10
	minTermLength         = 3
)

// TermCount is a search token with its frequency.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// TermFrequencies tokenizes queries on whitespace after lower-casing,
// ignores tokens of two characters or fewer, and returns the counts sorted
// by descending frequency. Ties keep first-appearance order.
func TermFrequencies(queries []string) []TermCount {
	index := make(map[string]int)
	var out []TermCount
	for _, q := range queries {
		for _, tok := range strings.Fields(strings.ToLower(q)) {
			if utf8.RuneCountInString(tok) < minTermLength {
				continue
			}
			if i, ok := index[tok]; ok {
				out[i].Count++
				continue
			}
			index[tok] = len(out)
			out = append(out, TermCount{Term: tok, Count: 1})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// FrequentTerms returns up to limit of the most frequent search terms.
// A non-positive limit uses DefaultMaxSearchTerms.
func FrequentTerms(queries []string, limit int) []string {
	if limit <= 0 {
		limit = DefaultMaxSearchTerms
	}
	counts := TermFrequencies(queries)
	if len(counts) > limit {
		counts = counts[:limit]
	}
	terms := make([]string, len(counts))
	for i, c := range counts {
		terms[i] = c.Term
	}
	return terms
}

// SearchQueries collects the non-empty queries of search events, oldest
// first.
func SearchQueries(history []events.InteractionEvent) []string {
	var out []string
	for _, e := range history {
		if e.Action != events.ActionSearch {
			continue
		}
		if q := strings.TrimSpace(e.Query); q != "" {
			out = append(out, q)
		}
	}
	return out
}
