package crawler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixtureItem struct {
	title string
	href  string
}

func resultsPage(items []fixtureItem) string {
	var b strings.Builder
	b.WriteString(`<html><body><div id="main_pack">`)
	b.WriteString(`<section class="sc_new sp_nblog _fe_view_root _prs_blg _sp_nblog">`)
	b.WriteString(`<div class="api_subject_bx"><ul>`)
	for _, it := range items {
		b.WriteString(`<li><div><div class="detail_box"><div class="title_area">`)
		if it.href != "" {
			fmt.Fprintf(&b, `<a href="%s">%s</a>`, it.href, it.title)
		} else {
			fmt.Fprintf(&b, `<a>%s</a>`, it.title)
		}
		b.WriteString(`</div></div></div></li>`)
	}
	b.WriteString(`</ul></div></section></div></body></html>`)
	return b.String()
}

func numberedItems(n int) []fixtureItem {
	items := make([]fixtureItem, n)
	for i := range items {
		items[i] = fixtureItem{
			title: fmt.Sprintf("Post <b>%d</b>", i+1),
			href:  fmt.Sprintf("https://blog.example.com/p/%d", i+1),
		}
	}
	return items
}

func parseFixture(t *testing.T, page string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func TestSearchURL(t *testing.T) {
	u, err := NaverBlog().SearchURL("서울 카페")
	require.NoError(t, err)

	parsed, err := url.Parse(u)
	require.NoError(t, err)
	assert.Equal(t, "search.naver.com", parsed.Host)
	assert.Equal(t, "/search.naver", parsed.Path)

	q := parsed.Query()
	assert.Equal(t, "서울 카페", q.Get("query"))
	assert.Equal(t, "tab.blog.all", q.Get("ssc"))
	assert.Equal(t, "tab_jum", q.Get("sm"))
	assert.Equal(t, "post", q.Get("where"))
}

func TestParsePosts(t *testing.T) {
	engine := NaverBlog()
	base, _ := url.Parse("https://search.naver.com/search.naver?query=x")

	t.Run("ranks are contiguous", func(t *testing.T) {
		doc := parseFixture(t, resultsPage(numberedItems(12)))
		posts := ParsePosts(doc.Selection, engine.ItemSelector, base, 10)

		require.Len(t, posts, 10)
		for i, p := range posts {
			assert.Equal(t, i+1, p.Rank)
			assert.Equal(t, fmt.Sprintf("Post %d", i+1), p.Title)
		}
	})

	t.Run("skips incomplete elements", func(t *testing.T) {
		items := []fixtureItem{
			{title: "first", href: "https://a.example/1"},
			{title: "no link"},
			{title: "", href: "https://a.example/empty"},
			{title: "relative", href: "/blog/3"},
		}
		doc := parseFixture(t, resultsPage(items))
		posts := ParsePosts(doc.Selection, engine.ItemSelector, base, 10)

		require.Len(t, posts, 2)
		assert.Equal(t, Post{Rank: 1, Title: "first", Link: "https://a.example/1"}, posts[0])
		assert.Equal(t, Post{Rank: 2, Title: "relative", Link: "https://search.naver.com/blog/3"}, posts[1])
	})

	t.Run("count caps elements read", func(t *testing.T) {
		items := []fixtureItem{
			{title: "no link"},
			{title: "second", href: "https://a.example/2"},
			{title: "third", href: "https://a.example/3"},
		}
		doc := parseFixture(t, resultsPage(items))
		posts := ParsePosts(doc.Selection, engine.ItemSelector, base, 2)

		require.Len(t, posts, 1)
		assert.Equal(t, "second", posts[0].Title)
		assert.Equal(t, 1, posts[0].Rank)
	})

	t.Run("non positive count", func(t *testing.T) {
		doc := parseFixture(t, resultsPage(numberedItems(3)))
		assert.Empty(t, ParsePosts(doc.Selection, engine.ItemSelector, base, 0))
	})
}

func testCollector(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *Collector {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.Backend = BackendHTTP
	cfg.WaitTimeout = timeout
	cfg.Engine.BaseURL = srv.URL + "/search.naver"

	c, err := NewCollector(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCollectorFetchPosts(t *testing.T) {
	var gotQuery url.Values
	c := testCollector(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, resultsPage(numberedItems(15)))
	}, 5*time.Second)

	posts, err := c.FetchPosts(context.Background(), "seoul cafe", 10)
	require.NoError(t, err)
	require.Len(t, posts, 10)
	for i, p := range posts {
		assert.Equal(t, i+1, p.Rank)
	}
	assert.Equal(t, "seoul cafe", gotQuery.Get("query"))
	assert.Equal(t, "post", gotQuery.Get("where"))
}

func TestCollectorNoResults(t *testing.T) {
	c := testCollector(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>nothing</p></body></html>`)
	}, 5*time.Second)

	posts, err := c.FetchPosts(context.Background(), "nothing", 10)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestCollectorTimeout(t *testing.T) {
	c := testCollector(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}, 50*time.Millisecond)

	posts, err := c.FetchPosts(context.Background(), "slow", 10)
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestCollectorServerError(t *testing.T) {
	c := testCollector(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}, 5*time.Second)

	posts, err := c.FetchPosts(context.Background(), "broken", 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScrape)
	assert.Empty(t, posts)
}

func TestFetchPostsEmptyKeyword(t *testing.T) {
	c := testCollector(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("scraper should not be reached")
	}, time.Second)

	_, err := c.FetchPosts(context.Background(), "   ", 10)
	assert.ErrorIs(t, err, ErrEmptyKeyword)

	_, err = NewBrowser(nil, zap.NewNop()).FetchPosts(context.Background(), "", 10)
	assert.ErrorIs(t, err, ErrEmptyKeyword)
}

func TestCollectorCookieStore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "NID", Value: "abc"})
		fmt.Fprint(w, resultsPage(numberedItems(1)))
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.Engine.BaseURL = srv.URL + "/search.naver"
	cfg.CookieDBPath = filepath.Join(t.TempDir(), "cookies.db")

	c, err := NewCollector(cfg, zap.NewNop())
	require.NoError(t, err)

	posts, err := c.FetchPosts(context.Background(), "cookie", 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	u, _ := url.Parse(srv.URL)
	assert.Contains(t, c.store.Cookies(u), "NID=abc")
	require.NoError(t, c.Close())
}

func TestBoltDBStorage(t *testing.T) {
	s := &BoltDBStorage{DBPath: filepath.Join(t.TempDir(), "nested", "store.db")}
	require.NoError(t, s.Init())
	defer s.Close()

	visited, err := s.IsVisited(42)
	require.NoError(t, err)
	assert.False(t, visited)

	require.NoError(t, s.Visited(42))
	visited, err = s.IsVisited(42)
	require.NoError(t, err)
	assert.True(t, visited)

	u, _ := url.Parse("https://search.naver.com/search.naver")
	assert.Empty(t, s.Cookies(u))
	s.SetCookies(u, "a=1")
	assert.Equal(t, "a=1", s.Cookies(u))
}

func TestNewScraper(t *testing.T) {
	cfg := DefaultConfig()

	s, err := NewScraper(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &Browser{}, s)

	cfg.Backend = BackendHTTP
	s, err = NewScraper(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &Collector{}, s)

	cfg.Backend = "selenium"
	_, err = NewScraper(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestNewProxyTransport(t *testing.T) {
	tr, err := newProxyTransport("socks5://127.0.0.1:9050")
	require.NoError(t, err)
	assert.NotNil(t, tr.DialContext)

	tr, err = newProxyTransport("http://proxy.local:3128")
	require.NoError(t, err)
	assert.NotNil(t, tr.Proxy)

	_, err = newProxyTransport("ftp://proxy.local")
	assert.Error(t, err)
}

func TestIsWaitTimeout(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	assert.True(t, isWaitTimeout(context.DeadlineExceeded, parent))
	assert.True(t, isWaitTimeout(fmt.Errorf("wrapped: %w", context.DeadlineExceeded), parent))
	assert.False(t, isWaitTimeout(context.Canceled, parent))

	cancel()
	assert.False(t, isWaitTimeout(context.DeadlineExceeded, parent))
}

func TestContextLogger(t *testing.T) {
	ctx := WithContextID(context.Background(), GenerateContextID("search"))
	assert.True(t, strings.HasPrefix(GetContextID(ctx), "search_"))
	assert.NotNil(t, GetContextLogger(WithKeyword(ctx, "kw"), nil))
}

func TestGuard(t *testing.T) {
	fetch := func() (posts []Post, err error) {
		defer guard(zap.NewNop(), &posts, &err)
		var m map[string]int
		m["boom"] = 1
		return []Post{{Rank: 1}}, nil
	}

	posts, err := fetch()
	assert.Empty(t, posts)
	assert.NotNil(t, posts)
	assert.True(t, errors.Is(err, ErrScrape))
}
