package generate

import (
	"context"
	"time"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/pipeline/composer"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/pipeline/playbook"
)

type LLMConnector interface {
	Complete(ctx context.Context, req *entity.CompletionRequest) (string, error)
}

type GroundingFetcher interface {
	Fetch(ctx context.Context, productName string, keywords []string, launchDate *time.Time) []entity.GroundingSignal
	MapSections(signals []entity.GroundingSignal) []string
}

type PlaybookRetriever interface {
	Retrieve(ctx context.Context, q playbook.Query) []entity.PlaybookSearchResult
}

type PromptComposer interface {
	Compose(snapshot *entity.ConfigSnapshot, req *entity.GenerateRequest, results []entity.PlaybookSearchResult, signals []entity.GroundingSignal) composer.Prompt
}

type RefinementLoop interface {
	Run(ctx context.Context, draft entity.GenerateResponse, req *entity.GenerateRequest, signals []entity.GroundingSignal) (entity.GenerateResponse, *entity.CritiqueResult, int)
}

type ConfigProvider interface {
	Snapshot(ctx context.Context) *entity.ConfigSnapshot
}

type CallbackConnector interface {
	SendGenerated(ctx context.Context, callbackURL string, requestID string, data *entity.GenerateResponse)
	SendError(ctx context.Context, callbackURL string, requestID string, message string, details map[string]any)
}

type RequestValidator interface {
	ValidateGenerate(req *entity.GenerateRequest) error
	ValidateGenerateAsync(req *entity.AsyncGenerateRequest) error
}
