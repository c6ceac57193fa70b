package rag

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
)

// MockConnector serves a small fixed guideline corpus.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

var mockCorpus = []entity.PlaybookSearchResult{
	{ID: "bg-001", Content: "Lead with the benefit, then the feature. Keep sentences short and confident.", Metadata: entity.PlaybookMetadata{Section: "tone_of_voice"}},
	{ID: "bg-002", Content: "Structure copy so each paragraph answers one question a shopper would ask.", Metadata: entity.PlaybookMetadata{Section: "geo_aeo"}},
	{ID: "bg-003", Content: "AI-assisted copy must be reviewed for factual claims and never invent specifications.", Metadata: entity.PlaybookMetadata{Section: "ai_content_guide"}},
	{ID: "bg-004", Content: "Camera messaging: describe results (low-light detail, zoom clarity), not sensor jargon.", Metadata: entity.PlaybookMetadata{Section: "camera_imaging"}},
	{ID: "bg-005", Content: "Battery messaging: quote all-day use and charging speed only with approved figures.", Metadata: entity.PlaybookMetadata{Section: "battery_charging"}},
	{ID: "bg-006", Content: "FAQ answers stay under two sentences and restate the product name once.", Metadata: entity.PlaybookMetadata{Section: "faq_guidelines"}},
}

func (m *MockConnector) Search(ctx context.Context, req *entity.RAGSearchRequest) ([]entity.PlaybookSearchResult, error) {
	ctxzap.Info(ctx, "[MOCK] playbook search", zap.String("query", req.Query), zap.String("section", req.Section))

	var out []entity.PlaybookSearchResult
	for _, doc := range mockCorpus {
		if req.Section != "" && doc.Metadata.Section != req.Section {
			continue
		}
		doc.Score = mockScore(req.Query, doc.ID)
		out = append(out, doc)
		if req.TopK > 0 && len(out) >= req.TopK {
			break
		}
	}
	return out, nil
}

func (m *MockConnector) MultiSearch(ctx context.Context, req *entity.RAGMultiSearchRequest) ([]entity.PlaybookSearchResult, error) {
	ctxzap.Info(ctx, "[MOCK] playbook multi-search", zap.Int("query_count", len(req.Queries)))

	seen := make(map[string]bool)
	var out []entity.PlaybookSearchResult
	for _, q := range req.Queries {
		hits, _ := m.Search(ctx, &entity.RAGSearchRequest{Query: q, TopK: req.TopKPerQuery})
		for _, h := range hits {
			if req.Deduplicate && seen[h.ID] {
				continue
			}
			seen[h.ID] = true
			out = append(out, h)
		}
	}
	return out, nil
}

// mockScore gives a stable pseudo-similarity in [0.5, 1).
func mockScore(query, id string) float64 {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s|%s", query, id)
	return 0.5 + float64(h.Sum32()%500)/1000
}
