package search

import (
	"context"
	"fmt"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
)

// MockConnector returns fixed search hits that echo the query.
type MockConnector struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
		now:    time.Now,
	}
}

func (m *MockConnector) Search(ctx context.Context, query string) ([]entity.WebSearchResult, error) {
	ctxzap.Info(ctx, "[MOCK] web search", zap.String("query", query))

	published := m.now().UTC().AddDate(0, 0, -7)
	return []entity.WebSearchResult{
		{
			Title:         fmt.Sprintf("%s: hands-on impressions", query),
			URL:           "https://example.com/mock/hands-on",
			Snippet:       "Reviewers highlight the camera and battery life, with fast charging called out as a strength.",
			PublishedDate: &published,
		},
		{
			Title:   fmt.Sprintf("%s compared", query),
			URL:     "https://example.com/mock/compare",
			Snippet: "How the display and performance stack up versus last year's model.",
		},
	}, nil
}
