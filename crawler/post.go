package crawler

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Post is one ranked search result.
type Post struct {
	Rank  int    `json:"rank"`
	Title string `json:"title"`
	Link  string `json:"link"`
}

// ParsePosts reads at most count elements matching selector under root.
// Elements without a title or a link are skipped; kept posts are ranked
// from 1 in document order.
func ParsePosts(root *goquery.Selection, selector string, base *url.URL, count int) []Post {
	posts := make([]Post, 0, count)
	if count <= 0 {
		return posts
	}

	root.Find(selector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= count {
			return false
		}

		title := strings.Join(strings.Fields(s.Text()), " ")
		href, _ := s.Attr("href")
		link := resolveLink(base, href)
		if title == "" || link == "" {
			return true
		}

		posts = append(posts, Post{
			Rank:  len(posts) + 1,
			Title: title,
			Link:  link,
		})
		return true
	})

	return posts
}

func resolveLink(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "javascript:") || href == "#" {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	return ref.String()
}
