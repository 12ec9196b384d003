package search

var defaultStopWords = []string{
	// korean
	"이", "그", "저", "것", "수", "등", "및", "또는", "그리고", "하지만", "그래서",
	"때문에", "위해", "통해", "대해", "관련", "이런", "저런", "그런", "이러한",
	"저러한", "그러한", "이것", "저것", "그것",
	// english
	"a", "an", "and", "are", "as", "at", "be", "by", "for", "from", "has",
	"in", "is", "it", "its", "of", "on", "or", "that", "the", "to", "was",
	"with", "this", "these", "you", "your", "we", "our", "my", "how", "what",
}
