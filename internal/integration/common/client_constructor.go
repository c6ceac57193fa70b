package common

import (
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/config"
	pkgHTTP "github.com/ModawnAI/samsung-geo-tool-sub004/pkg/http"
	"go.uber.org/zap"
)

// fanOutConnsPerHost covers the parallel sub-queries a single request issues
// against one host.
const fanOutConnsPerHost = 16

// NewBaseConnector builds the JSON connector shared by all outbound integrations.
func NewBaseConnector(cfg config.HTTPClientConfig, logger *zap.Logger) *pkgHTTP.Connector {
	connCfg := &pkgHTTP.ConnectorConfig{
		Logger:  logger,
		BaseURL: cfg.Url,
	}

	return pkgHTTP.NewConnector(
		connCfg,
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkgHTTP.WithMaxIdleConnsPerHost(fanOutConnsPerHost),
		pkgHTTP.WithRequestLogging(),
		pkgHTTP.WithAuthToken(cfg.Token),
	)
}
