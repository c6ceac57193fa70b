package search

import (
	"context"
	"fmt"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/config"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/integration/common"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/pkg/retry"
	pkghttp "github.com/ModawnAI/samsung-geo-tool-sub004/pkg/http"
)

// Connector queries the web-search API used for grounding.
type Connector struct {
	config    config.SearchConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.SearchConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Search runs a single query and returns its hits.
func (c *Connector) Search(ctx context.Context, query string) ([]entity.WebSearchResult, error) {
	req := &entity.WebSearchRequest{
		Query:       query,
		MaxResults:  c.config.ResultsPerQuery,
		SearchDepth: c.config.SearchDepth,
	}

	var resp entity.WebSearchResponse
	err := retry.Do(ctx, c.config.Retry, func() error {
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.SearchEndpoint, req, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("web search %q: %w", query, err)
	}

	ctxzap.Debug(ctx, "web search finished",
		zap.String("query", query),
		zap.Int("result_count", len(resp.Results)),
	)

	return resp.Results, nil
}
