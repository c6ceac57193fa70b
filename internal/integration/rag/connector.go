package rag

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

// Connector queries the brand-guideline vector index.
type Connector struct {
	config    config.RAGConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.RAGConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Search runs one semantic query, optionally restricted to a guideline section.
func (c *Connector) Search(ctx context.Context, req *entity.RAGSearchRequest) ([]entity.PlaybookSearchResult, error) {
	var resp entity.RAGSearchResponse
	err := retry.Do(ctx, c.config.Retry, func() error {
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.SearchEndpoint, req, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("playbook search: %w", err)
	}

	ctxzap.Debug(ctx, "playbook search finished",
		zap.String("query", req.Query),
		zap.String("section", req.Section),
		zap.Int("result_count", len(resp.Results)),
	)

	return resp.Results, nil
}

// MultiSearch runs several queries in one call, top-K per query.
func (c *Connector) MultiSearch(ctx context.Context, req *entity.RAGMultiSearchRequest) ([]entity.PlaybookSearchResult, error) {
	var resp entity.RAGSearchResponse
	err := retry.Do(ctx, c.config.Retry, func() error {
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.MultiSearchEndpoint, req, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("playbook multi-search: %w", err)
	}

	ctxzap.Debug(ctx, "playbook multi-search finished",
		zap.Int("query_count", len(req.Queries)),
		zap.Int("result_count", len(resp.Results)),
	)

	return resp.Results, nil
}
