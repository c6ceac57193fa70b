// Package playbook retrieves brand-guideline chunks for a generation request.
package playbook

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/config"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
)

// AIContentGuideSection is always consulted in addition to the base queries.
const AIContentGuideSection = "ai_content_guide"

// Index is the guideline vector index.
type Index interface {
	Search(ctx context.Context, req *entity.RAGSearchRequest) ([]entity.PlaybookSearchResult, error)
	MultiSearch(ctx context.Context, req *entity.RAGMultiSearchRequest) ([]entity.PlaybookSearchResult, error)
}

// Query is the input of one retrieval.
type Query struct {
	ProductName string
	Keywords    []string
	Category    string
	// Sections are the guideline sections ranked by grounding relevance.
	Sections []string
}

type Retriever struct {
	index Index
	cfg   config.PipelineConfig
}

// NewRetriever creates a Retriever. A nil index disables retrieval.
func NewRetriever(index Index, cfg config.PipelineConfig) *Retriever {
	return &Retriever{
		index: index,
		cfg:   cfg,
	}
}

// BaseQueries builds the multi-intent query set sent as one multi-search.
func (r *Retriever) BaseQueries(q Query) []string {
	product := strings.TrimSpace(q.ProductName)
	marketing := product + " product marketing"
	if c := strings.TrimSpace(q.Category); c != "" {
		marketing = fmt.Sprintf("%s %s product marketing", product, c)
	}

	queries := []string{
		"brand guidelines messaging principles",
		"GEO AEO optimization guidance for answer engines",
		marketing,
	}
	for i, kw := range q.Keywords {
		if i >= r.cfg.MaxKeywordQueries {
			break
		}
		queries = append(queries, fmt.Sprintf("%s %s messaging", product, kw))
	}
	queries = append(queries, "tone of voice writing style")
	for i, section := range q.Sections {
		if i >= r.cfg.MaxSectionQueries {
			break
		}
		queries = append(queries, fmt.Sprintf("%s guidelines for %s", strings.ReplaceAll(section, "_", " "), product))
	}
	return queries
}

// Retrieve returns the most relevant guideline chunks, deduplicated by id and
// sorted by score. Any failing lookup contributes nothing.
func (r *Retriever) Retrieve(ctx context.Context, q Query) []entity.PlaybookSearchResult {
	if r.index == nil {
		ctxzap.Debug(ctx, "playbook retrieval disabled")
		return []entity.PlaybookSearchResult{}
	}

	start := time.Now()

	var (
		base     []entity.PlaybookSearchResult
		aiGuide  []entity.PlaybookSearchResult
		sections = q.Sections
	)
	if len(sections) > r.cfg.SectionLookups {
		sections = sections[:r.cfg.SectionLookups]
	}
	perSection := make([][]entity.PlaybookSearchResult, len(sections))

	var g errgroup.Group
	g.Go(func() error {
		base = r.call(ctx, "multi-search", func(ctx context.Context) ([]entity.PlaybookSearchResult, error) {
			return r.index.MultiSearch(ctx, &entity.RAGMultiSearchRequest{
				Queries:      r.BaseQueries(q),
				TopKPerQuery: r.cfg.PlaybookTopKPerQuery,
				Deduplicate:  true,
			})
		})
		return nil
	})
	g.Go(func() error {
		aiGuide = r.call(ctx, AIContentGuideSection, func(ctx context.Context) ([]entity.PlaybookSearchResult, error) {
			return r.index.Search(ctx, &entity.RAGSearchRequest{
				Query:   q.ProductName + " AI content writing rules",
				TopK:    r.cfg.PlaybookTopKPerQuery,
				Section: AIContentGuideSection,
			})
		})
		return nil
	})
	for i, section := range sections {
		g.Go(func() error {
			perSection[i] = r.call(ctx, section, func(ctx context.Context) ([]entity.PlaybookSearchResult, error) {
				return r.index.Search(ctx, &entity.RAGSearchRequest{
					Query:   fmt.Sprintf("%s %s", q.ProductName, strings.ReplaceAll(section, "_", " ")),
					TopK:    r.cfg.PlaybookTopKPerQuery,
					Section: section,
				})
			})
			return nil
		})
	}
	_ = g.Wait()

	m := newMerger()
	m.add(base, 1)
	m.add(aiGuide, 1)
	for _, results := range perSection {
		m.add(results, r.cfg.SectionBoost)
	}
	out := m.sorted(r.cfg.MaxPlaybookResults)

	ctxzap.Info(ctx, "playbook retrieved",
		zap.Int("base_count", len(base)),
		zap.Int("ai_guide_count", len(aiGuide)),
		zap.Strings("boosted_sections", sections),
		zap.Int("result_count", len(out)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return out
}

func (r *Retriever) call(
	ctx context.Context,
	name string,
	fn func(ctx context.Context) ([]entity.PlaybookSearchResult, error),
) []entity.PlaybookSearchResult {
	callCtx, cancel := context.WithTimeout(ctx, r.cfg.CallTimeout)
	defer cancel()

	results, err := fn(callCtx)
	if err != nil {
		ctxzap.Warn(ctx, "playbook lookup failed", zap.String("lookup", name), zap.Error(err))
		return nil
	}
	return results
}

// merger combines result sets by id. The first occurrence keeps its content
// and the highest score seen, after boosting, wins.
type merger struct {
	byID  map[string]int
	items []entity.PlaybookSearchResult
}

func newMerger() *merger {
	return &merger{byID: make(map[string]int)}
}

func (m *merger) add(results []entity.PlaybookSearchResult, boost float64) {
	for _, res := range results {
		score := res.Score * boost
		if i, ok := m.byID[res.ID]; ok {
			if score > m.items[i].Score {
				m.items[i].Score = score
			}
			continue
		}
		res.Score = score
		m.byID[res.ID] = len(m.items)
		m.items = append(m.items, res)
	}
}

func (m *merger) sorted(limit int) []entity.PlaybookSearchResult {
	out := make([]entity.PlaybookSearchResult, len(m.items))
	copy(out, m.items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Sections lists the distinct sections of results in rank order.
func Sections(results []entity.PlaybookSearchResult) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, r := range results {
		s := r.Metadata.Section
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// Sources maps results to their breakdown provenance.
func Sources(results []entity.PlaybookSearchResult) []entity.PlaybookSource {
	out := make([]entity.PlaybookSource, 0, len(results))
	for _, r := range results {
		out = append(out, entity.PlaybookSource{ID: r.ID, Section: r.Metadata.Section, Score: r.Score})
	}
	return out
}
