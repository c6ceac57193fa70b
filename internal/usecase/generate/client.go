package generate

import (
	"context"
	"fmt"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/pipeline/composer"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/pkg/jsonrepair"
)

// GenerationError is a failed primary generation. Callers serve the templated
// fallback instead of surfacing it.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Is(target error) bool {
	return target == entity.ErrGeneration
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

var contentSchema = composer.ContentSchema(entity.SchemaMarketingContent, "YouTube marketing content for a product video.")

// Client produces the first draft from a composed prompt.
type Client struct {
	llm     LLMConnector
	timeout time.Duration
}

func NewClient(llm LLMConnector, timeout time.Duration) *Client {
	return &Client{
		llm:     llm,
		timeout: timeout,
	}
}

// Generate returns the decoded draft or a *GenerationError.
func (c *Client) Generate(ctx context.Context, prompt composer.Prompt) (entity.GenerateResponse, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	raw, err := c.llm.Complete(ctx, &entity.CompletionRequest{
		SystemPrompt: prompt.System,
		UserPrompt:   prompt.User,
		Schema:       contentSchema,
	})
	if err != nil {
		return entity.GenerateResponse{}, &GenerationError{Err: err}
	}

	res, err := jsonrepair.DecodeWithStrategy[entity.GenerateResponse](raw)
	if err != nil {
		return entity.GenerateResponse{}, &GenerationError{Err: err}
	}

	draft := res.Value
	draft.Breakdown = nil
	if draft.Description == "" && draft.FAQ == "" && len(draft.Hashtags) == 0 {
		return entity.GenerateResponse{}, &GenerationError{Err: entity.ErrEmptyCompletion}
	}

	ctxzap.Debug(ctx, "draft decoded", zap.String("strategy", res.Strategy))

	return draft, nil
}
