// Package grounding derives weighted user-intent signals from live web search
// and maps them onto brand-guideline sections.
package grounding

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/config"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
)

// Searcher is the web-search API.
type Searcher interface {
	Search(ctx context.Context, query string) ([]entity.WebSearchResult, error)
}

// Fetcher runs the grounding queries for one request.
type Fetcher struct {
	searcher Searcher
	vocab    *Vocabulary
	cfg      config.PipelineConfig
}

// NewFetcher creates a Fetcher. A nil searcher disables grounding.
func NewFetcher(searcher Searcher, vocab *Vocabulary, cfg config.PipelineConfig) *Fetcher {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &Fetcher{
		searcher: searcher,
		vocab:    vocab,
		cfg:      cfg,
	}
}

// Queries builds the fixed set of intent query templates.
func Queries(productName string, keywords []string) []string {
	product := strings.TrimSpace(productName)
	feature := "features"
	useCase := product + " best use cases"
	if len(keywords) > 0 {
		feature = keywords[0]
		useCase = fmt.Sprintf("%s %s use case", product, strings.Join(keywords, " "))
	}

	return []string{
		product + " review",
		product + " vs competitors comparison",
		fmt.Sprintf("%s %s user opinions", product, feature),
		product + " common questions",
		useCase,
	}
}

// Fetch returns the grounding signals for a product. It never fails: every
// query that errors contributes nothing and a disabled searcher yields an
// empty set.
func (f *Fetcher) Fetch(ctx context.Context, productName string, keywords []string, launchDate *time.Time) []entity.GroundingSignal {
	if f.searcher == nil {
		ctxzap.Debug(ctx, "grounding disabled, no web-search credential")
		return []entity.GroundingSignal{}
	}

	start := time.Now()
	queries := Queries(productName, keywords)
	perQuery := make([][]entity.WebSearchResult, len(queries))

	var g errgroup.Group
	for i, q := range queries {
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(ctx, f.cfg.CallTimeout)
			defer cancel()

			results, err := f.searcher.Search(callCtx, q)
			if err != nil {
				ctxzap.Warn(ctx, "grounding query failed", zap.String("query", q), zap.Error(err))
				return nil
			}
			perQuery[i] = results
			return nil
		})
	}
	_ = g.Wait()

	var all []entity.WebSearchResult
	for _, results := range perQuery {
		all = append(all, results...)
	}
	total := len(all)
	if launchDate != nil {
		all = FilterByLaunch(all, *launchDate)
	}

	signals := ExtractSignals(all, f.vocab, keywords, f.cfg.KeywordWeight, f.cfg.MaxSignals)

	ctxzap.Info(ctx, "grounding signals extracted",
		zap.Int("query_count", len(queries)),
		zap.Int("result_count", total),
		zap.Int("kept_after_launch_filter", len(all)),
		zap.Int("signal_count", len(signals)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return signals
}

// MapSections maps signals to the top guideline sections.
func (f *Fetcher) MapSections(signals []entity.GroundingSignal) []string {
	return f.vocab.MapSections(signals, f.cfg.MaxSections)
}
