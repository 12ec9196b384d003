package crawler

import (
	"time"
)

const (
	BackendBrowser = "browser"
	BackendHTTP    = "http"
)

type ScraperConfig struct {
	Backend        string
	WaitTimeout    time.Duration
	NavTimeout     time.Duration
	UserAgent      string
	AcceptLanguage string
	ProxyURL       string
	CookieDBPath   string
	WindowWidth    int
	WindowHeight   int
	Engine         SearchEngine
}

// DefaultConfig returns a default scraper configuration
func DefaultConfig() *ScraperConfig {
	return &ScraperConfig{
		Backend:        BackendBrowser,
		WaitTimeout:    10 * time.Second,
		NavTimeout:     60 * time.Second,
		UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		AcceptLanguage: "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7",
		WindowWidth:    1920,
		WindowHeight:   1080,
		Engine:         NaverBlog(),
	}
}
