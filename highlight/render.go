package highlight

import (
	"fmt"
	"net/url"

	"postscout/crawler"

	"golang.org/x/net/html"
)

// RenderPost renders one result as a link opening in a new browsing context,
// with the title highlighted.
func RenderPost(p crawler.Post, searchKeywords, recommended []Colored) string {
	return fmt.Sprintf(
		"<a href='%s' target='_blank' rel='noopener noreferrer' style='text-decoration:none; color:black;'>%d. %s</a>",
		html.EscapeString(safeLink(p.Link)), p.Rank, Highlight(p.Title, searchKeywords, recommended),
	)
}

func safeLink(link string) string {
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "#"
	}
	return u.String()
}
