package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"postscout/crawler"
	"postscout/search"
	"postscout/session"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App     AppConfig     `yaml:"app"`
	Log     LogConfig     `yaml:"log"`
	Scraper ScraperConfig `yaml:"scraper"`
	Search  SearchConfig  `yaml:"search"`
}

type AppConfig struct {
	Port       int           `yaml:"port"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type ScraperConfig struct {
	Backend        string               `yaml:"backend"`
	WaitTimeout    time.Duration        `yaml:"wait_timeout"`
	NavTimeout     time.Duration        `yaml:"nav_timeout"`
	UserAgent      string               `yaml:"user_agent"`
	AcceptLanguage string               `yaml:"accept_language"`
	ProxyURL       string               `yaml:"proxy_url"`
	CookieDB       string               `yaml:"cookie_db"`
	Engine         crawler.SearchEngine `yaml:"engine"`
}

type SearchConfig struct {
	ResultCount int      `yaml:"result_count"`
	SampleSize  int      `yaml:"sample_size"`
	TopN        int      `yaml:"top_n"`
	HistorySize int      `yaml:"history_size"`
	StopWords   []string `yaml:"stop_words"`
}

func DefaultConfig() *Config {
	sc := crawler.DefaultConfig()
	opts := session.DefaultOptions()

	return &Config{
		App: AppConfig{
			Port:       8080,
			SessionTTL: 2 * time.Hour,
		},
		Log: LogConfig{
			Level: "info",
		},
		Scraper: ScraperConfig{
			Backend:        sc.Backend,
			WaitTimeout:    sc.WaitTimeout,
			NavTimeout:     sc.NavTimeout,
			UserAgent:      sc.UserAgent,
			AcceptLanguage: sc.AcceptLanguage,
			Engine:         sc.Engine,
		},
		Search: SearchConfig{
			ResultCount: opts.ResultCount,
			SampleSize:  opts.SampleSize,
			TopN:        search.DefaultTopN,
			HistorySize: opts.HistorySize,
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("APP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid APP_PORT: %w", err)
		}
		c.App.Port = port
	}
	if v := os.Getenv("PROXY_URL"); v != "" {
		c.Scraper.ProxyURL = v
	}
	if v := os.Getenv("SCRAPER_BACKEND"); v != "" {
		c.Scraper.Backend = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

func (c *Config) Validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("invalid app port %d", c.App.Port)
	}
	switch c.Scraper.Backend {
	case crawler.BackendBrowser, crawler.BackendHTTP:
	default:
		return fmt.Errorf("unknown scraper backend %q", c.Scraper.Backend)
	}
	if c.Scraper.WaitTimeout <= 0 {
		return errors.New("scraper wait_timeout must be positive")
	}
	if c.Scraper.Engine.BaseURL == "" || c.Scraper.Engine.ItemSelector == "" {
		return errors.New("scraper engine needs base_url and item_selector")
	}
	if c.Search.ResultCount <= 0 {
		return errors.New("search result_count must be positive")
	}
	if c.Search.HistorySize < 0 || c.Search.HistorySize > session.MaxHistory {
		return fmt.Errorf("search history_size must be between 0 and %d", session.MaxHistory)
	}
	if c.Search.TopN < 0 {
		return errors.New("search top_n must not be negative")
	}
	return nil
}

// CrawlerConfig converts the scraper section for the crawler package.
func (c *Config) CrawlerConfig() *crawler.ScraperConfig {
	sc := crawler.DefaultConfig()
	sc.Backend = c.Scraper.Backend
	sc.WaitTimeout = c.Scraper.WaitTimeout
	if c.Scraper.NavTimeout > 0 {
		sc.NavTimeout = c.Scraper.NavTimeout
	}
	sc.UserAgent = c.Scraper.UserAgent
	sc.AcceptLanguage = c.Scraper.AcceptLanguage
	sc.ProxyURL = c.Scraper.ProxyURL
	sc.CookieDBPath = c.Scraper.CookieDB
	sc.Engine = c.Scraper.Engine
	return sc
}

func (c *Config) SessionOptions() session.Options {
	return session.Options{
		ResultCount: c.Search.ResultCount,
		SampleSize:  c.Search.SampleSize,
		HistorySize: c.Search.HistorySize,
	}
}
