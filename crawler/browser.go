package crawler

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// Browser scrapes the results page with a headless Chrome. Each FetchPosts
// call owns its own browser process.
type Browser struct {
	logger          *zap.Logger
	cfg             *ScraperConfig
	ChromedpOptions []chromedp.ExecAllocatorOption
}

func NewBrowser(cfg *ScraperConfig, logger *zap.Logger) *Browser {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	opts := make([]chromedp.ExecAllocatorOption, len(chromedp.DefaultExecAllocatorOptions))
	copy(opts, chromedp.DefaultExecAllocatorOptions[:])
	opts = append(opts,
		chromedp.Headless,
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.WindowSize(cfg.WindowWidth, cfg.WindowHeight),
		chromedp.UserAgent(cfg.UserAgent),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-notifications", true),
		chromedp.Flag("disable-popup-blocking", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
	)
	if cfg.ProxyURL != "" {
		opts = append(opts, chromedp.ProxyServer(cfg.ProxyURL))
	}

	return &Browser{
		logger:          logger,
		cfg:             cfg,
		ChromedpOptions: opts,
	}
}

func (b *Browser) FetchPosts(ctx context.Context, keyword string, count int) (posts []Post, err error) {
	logger := GetContextLogger(ctx, b.logger)
	defer guard(logger, &posts, &err)

	keyword, err = normalizeKeyword(keyword)
	if err != nil {
		return []Post{}, err
	}
	searchURL, err := b.cfg.Engine.SearchURL(keyword)
	if err != nil {
		return []Post{}, fmt.Errorf("%w: build search url: %v", ErrScrape, err)
	}

	// ================
	// Browser Context
	// ================
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, b.ChromedpOptions...)
	defer allocCancel()
	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()
	navCtx, navCancel := context.WithTimeout(taskCtx, b.cfg.NavTimeout)
	defer navCancel()

	// ================
	// Doing Search
	// ================
	logger.Info("Navigating to search",
		zap.String("url", searchURL),
		zap.String("engine", b.cfg.Engine.Name))

	err = chromedp.Run(navCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers{"Accept-Language": b.cfg.AcceptLanguage}),
		chromedp.Navigate(searchURL),
	)
	if err != nil {
		logger.Error("Failed to navigate", zap.Error(err))
		return []Post{}, fmt.Errorf("%w: navigation: %v", ErrScrape, err)
	}

	waitCtx, waitCancel := context.WithTimeout(navCtx, b.cfg.WaitTimeout)
	err = chromedp.Run(waitCtx, chromedp.WaitReady(b.cfg.Engine.ItemSelector, chromedp.ByQuery))
	waitCancel()
	if err != nil {
		if isWaitTimeout(err, navCtx) {
			logger.Warn("No search results before timeout",
				zap.String("keyword", keyword),
				zap.Duration("timeout", b.cfg.WaitTimeout))
			return []Post{}, nil
		}
		logger.Error("Failed waiting for results", zap.Error(err))
		return []Post{}, fmt.Errorf("%w: wait: %v", ErrScrape, err)
	}

	var currentURL, domHTML string
	err = chromedp.Run(navCtx,
		chromedp.Location(&currentURL),
		chromedp.OuterHTML("html", &domHTML, chromedp.ByQuery),
	)
	if err != nil {
		logger.Error("Failed to read page", zap.Error(err))
		return []Post{}, fmt.Errorf("%w: read page: %v", ErrScrape, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(domHTML))
	if err != nil {
		logger.Error("Failed to parse page", zap.Error(err))
		return []Post{}, fmt.Errorf("%w: parse page: %v", ErrScrape, err)
	}

	base, err := url.Parse(currentURL)
	if err != nil {
		base, _ = url.Parse(searchURL)
	}

	posts = ParsePosts(doc.Selection, b.cfg.Engine.ItemSelector, base, count)
	logExtracted(logger, posts, currentURL)
	return posts, nil
}

// Close is a no-op; browser sessions never outlive a FetchPosts call.
func (b *Browser) Close() error {
	return nil
}

// isWaitTimeout reports whether err came from the result wait deadline rather
// than from the navigation deadline or a caller cancellation.
func isWaitTimeout(err error, parent context.Context) bool {
	return errors.Is(err, context.DeadlineExceeded) && parent.Err() == nil
}

func logExtracted(logger *zap.Logger, posts []Post, pageURL string) {
	logger.Info("Successfully extracted posts",
		zap.Int("total_posts", len(posts)),
		zap.String("page_url", pageURL))

	for i, p := range posts {
		if i >= 3 {
			break
		}
		title := p.Title
		if r := []rune(title); len(r) > 200 {
			title = string(r[:200])
		}
		logger.Debug("Extracted search result",
			zap.Int("rank", p.Rank),
			zap.String("url", p.Link),
			zap.String("title", title))
	}
}
