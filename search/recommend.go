package search

import (
	"sort"
	"strings"
)

// DefaultTopN is the number of recommended keywords shown per search.
const DefaultTopN = 2

// RecommendExtractor implements KeywordExtractor by term frequency over the
// cleaned titles.
type RecommendExtractor struct {
	TopN      int
	stopWords map[string]bool
}

// NewRecommendExtractor creates an extractor returning at most topN keywords.
// extraStopWords are added to the built-in set.
func NewRecommendExtractor(topN int, extraStopWords ...string) *RecommendExtractor {
	stopWords := make(map[string]bool, len(defaultStopWords)+len(extraStopWords))
	for _, w := range defaultStopWords {
		stopWords[strings.ToLower(w)] = true
	}
	for _, w := range extraStopWords {
		if w = strings.TrimSpace(w); w != "" {
			stopWords[strings.ToLower(w)] = true
		}
	}

	return &RecommendExtractor{
		TopN:      topN,
		stopWords: stopWords,
	}
}

// ExtractKeywords returns the most frequent terms of titles, most frequent
// first, ties in order of first appearance. A term is never returned when it
// is a substring of a search keyword or contains one.
func (re *RecommendExtractor) ExtractKeywords(titles []string, searchKeywords []string) []string {
	if re.TopN <= 0 || len(titles) == 0 {
		return nil
	}

	cleaned := make([]string, 0, len(titles))
	for _, title := range titles {
		cleaned = append(cleaned, CleanText(title))
	}

	needles := make([]string, 0, len(searchKeywords))
	for _, kw := range searchKeywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			needles = append(needles, kw)
		}
	}

	counts := make(map[string]int)
	var order []string
	for _, term := range Tokenize(strings.Join(cleaned, " ")) {
		if re.excluded(term, needles) {
			continue
		}
		if counts[term] == 0 {
			order = append(order, term)
		}
		counts[term]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > re.TopN {
		order = order[:re.TopN]
	}
	return order
}

func (re *RecommendExtractor) excluded(term string, needles []string) bool {
	lower := strings.ToLower(term)
	if re.stopWords[lower] {
		return true
	}
	for _, kw := range needles {
		if strings.Contains(kw, lower) || strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
