package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"postscout/api"
	"postscout/config"
	"postscout/crawler"
	"postscout/search"
	"postscout/session"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "postscout",
		Short:        "Find the blog posts a search keyword leads to",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "postscout.yaml", "path to the YAML config file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}

	var count int
	searchCmd := &cobra.Command{
		Use:   "search [keyword...]",
		Short: "Print the top blog posts for a keyword",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), configPath, strings.Join(args, " "), count, cmd.OutOrStdout())
		},
	}
	searchCmd.Flags().IntVarP(&count, "count", "n", 0, "number of posts to fetch (default from config)")

	rootCmd.AddCommand(serveCmd, searchCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	scraper crawler.Scraper
	svc     *session.Service
}

func newApp(configPath string, resultCount int) (*app, error) {
	// =========
	// Config
	// =========
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if resultCount > 0 {
		cfg.Search.ResultCount = resultCount
	}

	// =========
	// Logging
	// =========
	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	// =========
	// Scraper
	// =========
	scraper, err := crawler.NewScraper(cfg.CrawlerConfig(), logger)
	if err != nil {
		logger.Sync()
		return nil, fmt.Errorf("failed to create scraper: %w", err)
	}

	// =========
	// Search Service
	// =========
	extractor := search.NewRecommendExtractor(cfg.Search.TopN, cfg.Search.StopWords...)
	svc := session.NewService(scraper, extractor, cfg.SessionOptions(), logger)

	return &app{cfg: cfg, logger: logger, scraper: scraper, svc: svc}, nil
}

func (a *app) Close() {
	if err := a.scraper.Close(); err != nil {
		a.logger.Warn("failed to close scraper", zap.Error(err))
	}
	a.logger.Sync()
}

func runServe(ctx context.Context, configPath string) error {
	a, err := newApp(configPath, 0)
	if err != nil {
		return err
	}
	defer a.Close()

	server, err := api.NewServer(a.svc, a.cfg.App.Port, a.cfg.App.SessionTTL, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return server.Start(ctx)
}

func runSearch(ctx context.Context, configPath, keyword string, count int, out io.Writer) error {
	a, err := newApp(configPath, count)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx = crawler.WithContextID(ctx, crawler.GenerateContextID("cli"))
	state := a.svc.Search(ctx, nil, keyword)
	printState(out, state)
	return nil
}

func printState(out io.Writer, state *session.State) {
	if state.Error != "" {
		fmt.Fprintln(out, state.Error)
		return
	}

	fmt.Fprintln(out, "\n[상위 블로그 게시물]")
	for _, p := range state.Results {
		fmt.Fprintf(out, "%2d. %s → %s\n", p.Rank, p.Title, p.Link)
	}
	if len(state.Recommended) > 0 {
		fmt.Fprintf(out, "\n[추천 키워드] %s\n", strings.Join(state.Recommended, ", "))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	if strings.EqualFold(level, "debug") {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, err
		}
		cfg.Level = lvl
	}
	return cfg.Build()
}
