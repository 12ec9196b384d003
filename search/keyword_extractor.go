package search

// KeywordExtractor derives recommended keywords from result titles, leaving
// out anything overlapping the keywords that produced them.
type KeywordExtractor interface {
	ExtractKeywords(titles []string, searchKeywords []string) []string
}
