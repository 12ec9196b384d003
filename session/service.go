package session

import (
	"context"
	"strings"

	"postscout/crawler"
	"postscout/search"

	"go.uber.org/zap"
)

const (
	MsgEmptyInput   = "검색어를 입력해주세요."
	MsgNoResults    = "검색 결과가 없습니다."
	MsgSearchFailed = "검색 중 오류가 발생했습니다."
)

type Options struct {
	ResultCount int
	SampleSize  int
	HistorySize int
}

// DefaultOptions mirrors the interactive defaults: ten results, keywords
// recommended from the top five titles.
func DefaultOptions() Options {
	return Options{
		ResultCount: 10,
		SampleSize:  5,
		HistorySize: MaxHistory,
	}
}

// Service runs the search action: scrape, recommend, update the state.
type Service struct {
	scraper   crawler.Scraper
	extractor search.KeywordExtractor
	opts      Options
	logger    *zap.Logger
}

func NewService(scraper crawler.Scraper, extractor search.KeywordExtractor, opts Options, logger *zap.Logger) *Service {
	def := DefaultOptions()
	if opts.ResultCount <= 0 {
		opts.ResultCount = def.ResultCount
	}
	if opts.SampleSize <= 0 {
		opts.SampleSize = def.SampleSize
	}
	if opts.HistorySize <= 0 {
		opts.HistorySize = def.HistorySize
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		scraper:   scraper,
		extractor: extractor,
		opts:      opts,
		logger:    logger,
	}
}

// NewState returns an empty state sized by the service options.
func (svc *Service) NewState() *State {
	return NewState(svc.opts.HistorySize)
}

// Search runs one search for raw and records the outcome on state. A failed
// search keeps the previous results and only sets the error message.
func (svc *Service) Search(ctx context.Context, state *State, raw string) *State {
	if state == nil {
		state = svc.NewState()
	}

	raw = strings.TrimSpace(raw)
	state.Input = raw
	if raw == "" {
		state.Error = MsgEmptyInput
		return state
	}

	ctx = crawler.WithKeyword(ctx, raw)
	logger := crawler.GetContextLogger(ctx, svc.logger)

	posts, err := svc.scraper.FetchPosts(ctx, raw, svc.opts.ResultCount)
	if err != nil {
		logger.Error("search failed", zap.Error(err))
		state.Error = MsgSearchFailed
		return state
	}
	if len(posts) == 0 {
		logger.Info("search returned no results")
		state.Error = MsgNoResults
		return state
	}

	keywords := search.SplitKeywords(raw)

	sample := posts
	if len(sample) > svc.opts.SampleSize {
		sample = sample[:svc.opts.SampleSize]
	}
	titles := make([]string, 0, len(sample))
	for _, p := range sample {
		titles = append(titles, p.Title)
	}
	recommended := svc.extractor.ExtractKeywords(titles, keywords)

	state.Results = posts
	state.Keywords = keywords
	state.Recommended = recommended
	state.Selections = newSelections(keywords, recommended)
	state.Error = ""
	state.History.Push(raw)

	logger.Info("search completed",
		zap.Int("results", len(posts)),
		zap.Strings("recommended", recommended))
	return state
}
