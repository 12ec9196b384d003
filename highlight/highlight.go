package highlight

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/language"
	textsearch "golang.org/x/text/search"
)

const (
	searchSpan    = "<span style='background-color:%s;'>"
	recommendSpan = "<span style='color:%s; font-weight:bold;'>"
	closeSpan     = "</span>"
)

// segment is either raw title text or injected markup.
type segment struct {
	text   string
	markup bool
}

// Highlight escapes title and wraps every case-insensitive occurrence of the
// given keywords in a styled span. Search keywords are applied first, then
// recommended keywords, each pass matching only text so later spans may nest
// inside earlier ones but never inside a tag. Matching also folds character
// width, so "a" matches the full-width "ａ".
func Highlight(title string, searchKeywords, recommended []Colored) string {
	segs := []segment{{text: title}}
	matcher := textsearch.New(language.Und, textsearch.IgnoreCase)

	for _, kw := range searchKeywords {
		segs = wrap(matcher, segs, kw.Keyword, fmt.Sprintf(searchSpan, html.EscapeString(kw.Color)))
	}
	for _, kw := range recommended {
		segs = wrap(matcher, segs, kw.Keyword, fmt.Sprintf(recommendSpan, html.EscapeString(kw.Color)))
	}

	var b strings.Builder
	for _, s := range segs {
		if s.markup {
			b.WriteString(s.text)
		} else {
			b.WriteString(html.EscapeString(s.text))
		}
	}
	return b.String()
}

func wrap(matcher *textsearch.Matcher, segs []segment, keyword, open string) []segment {
	if keyword == "" {
		return segs
	}
	pattern := matcher.CompileString(keyword)

	out := make([]segment, 0, len(segs))
	for _, s := range segs {
		if s.markup {
			out = append(out, s)
			continue
		}

		rest := s.text
		for rest != "" {
			start, end := pattern.IndexString(rest)
			if start < 0 || end <= start {
				break
			}
			if start > 0 {
				out = append(out, segment{text: rest[:start]})
			}
			out = append(out,
				segment{text: open, markup: true},
				segment{text: rest[start:end]},
				segment{text: closeSpan, markup: true},
			)
			rest = rest[end:]
		}
		if rest != "" {
			out = append(out, segment{text: rest})
		}
	}
	return out
}
