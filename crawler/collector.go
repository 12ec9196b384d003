package crawler

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// Collector scrapes the results page over plain HTTP with colly. It only
// sees server-rendered markup.
type Collector struct {
	collector *colly.Collector
	store     *BoltDBStorage
	cfg       *ScraperConfig
	logger    *zap.Logger
}

func NewCollector(cfg *ScraperConfig, logger *zap.Logger) (*Collector, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	c := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
		colly.AllowURLRevisit(),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(cfg.WaitTimeout)

	if cfg.ProxyURL != "" {
		transport, err := newProxyTransport(cfg.ProxyURL)
		if err != nil {
			return nil, err
		}
		c.WithTransport(transport)
	}

	col := &Collector{
		collector: c,
		cfg:       cfg,
		logger:    logger,
	}

	if cfg.CookieDBPath != "" {
		store := &BoltDBStorage{DBPath: cfg.CookieDBPath}
		if err := c.SetStorage(store); err != nil {
			return nil, fmt.Errorf("failed to init cookie store: %w", err)
		}
		col.store = store
	}

	return col, nil
}

func (c *Collector) FetchPosts(ctx context.Context, keyword string, count int) (posts []Post, err error) {
	logger := GetContextLogger(ctx, c.logger)
	defer guard(logger, &posts, &err)

	keyword, err = normalizeKeyword(keyword)
	if err != nil {
		return []Post{}, err
	}
	searchURL, err := c.cfg.Engine.SearchURL(keyword)
	if err != nil {
		return []Post{}, fmt.Errorf("%w: build search url: %v", ErrScrape, err)
	}

	posts = []Post{}
	cc := c.collector.Clone()

	cc.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		r.Headers.Set("Accept-Language", c.cfg.AcceptLanguage)
	})

	cc.OnHTML("html", func(e *colly.HTMLElement) {
		posts = ParsePosts(e.DOM, c.cfg.Engine.ItemSelector, e.Request.URL, count)
	})

	cc.OnResponse(func(r *colly.Response) {
		logger.Info("Visited search page",
			zap.String("url", r.Request.URL.String()),
			zap.Int("status", r.StatusCode))
	})

	logger.Info("Fetching search page",
		zap.String("url", searchURL),
		zap.String("engine", c.cfg.Engine.Name))

	if err := cc.Visit(searchURL); err != nil {
		if isTimeout(err) {
			logger.Warn("No search results before timeout",
				zap.Duration("timeout", c.cfg.WaitTimeout))
			return []Post{}, nil
		}
		logger.Error("Failed to fetch search page", zap.Error(err))
		return []Post{}, fmt.Errorf("%w: visit: %v", ErrScrape, err)
	}
	cc.Wait()

	if err := ctx.Err(); err != nil {
		return []Post{}, fmt.Errorf("%w: %v", ErrScrape, err)
	}

	logExtracted(logger, posts, searchURL)
	return posts, nil
}

// Close releases the cookie store, if any.
func (c *Collector) Close() error {
	if c.store != nil {
		return c.store.Close()
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
