package crawler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrEmptyKeyword = errors.New("empty search keyword")
	ErrScrape       = errors.New("scrape failed")
)

// Scraper fetches ranked blog posts for a keyword. A timeout while waiting
// for results yields an empty slice and a nil error; any other failure yields
// an empty slice and an error wrapping ErrScrape.
type Scraper interface {
	FetchPosts(ctx context.Context, keyword string, count int) ([]Post, error)
	Close() error
}

// NewScraper builds the backend selected by cfg.Backend.
func NewScraper(cfg *ScraperConfig, logger *zap.Logger) (Scraper, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	switch cfg.Backend {
	case BackendBrowser, "":
		return NewBrowser(cfg, logger), nil
	case BackendHTTP:
		return NewCollector(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown scraper backend %q", cfg.Backend)
	}
}

func normalizeKeyword(keyword string) (string, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return "", ErrEmptyKeyword
	}
	return keyword, nil
}

// guard converts a panic inside a backend into an ErrScrape result.
func guard(logger *zap.Logger, posts *[]Post, err *error) {
	if r := recover(); r != nil {
		logger.Error("scraper panic recovered", zap.Any("panic", r))
		*posts = []Post{}
		*err = fmt.Errorf("%w: %v", ErrScrape, r)
	}
}
