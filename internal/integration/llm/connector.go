package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/config"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
)

// Connector talks to an OpenAI-compatible chat completions endpoint.
type Connector struct {
	config config.LLMConnectorConfig
	client openai.Client
	logger *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Connector {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.Timeout),
		option.WithMaxRetries(1),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Connector{
		config: cfg,
		client: openai.NewClient(opts...),
		logger: logger,
	}
}

// Complete runs one chat completion and returns the raw message content.
func (c *Connector) Complete(ctx context.Context, req *entity.CompletionRequest) (string, error) {
	start := time.Now()

	temperature := c.config.Temperature
	if req.Temperature > 0 {
		temperature = req.Temperature
	}
	maxTokens := c.config.MaxTokens
	if req.MaxTokens > 0 {
		maxTokens = req.MaxTokens
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.config.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.UserPrompt),
		},
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(maxTokens),
	}

	if req.Schema != nil {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        req.Schema.Name,
					Description: openai.String(req.Schema.Description),
					Schema:      req.Schema.Schema,
					Strict:      openai.Bool(true),
				},
			},
		}
	}

	ctxzap.Debug(ctx, "calling completion service",
		zap.String("model", c.config.Model),
		zap.Float64("temperature", temperature),
		zap.Int64("max_tokens", maxTokens),
		zap.Bool("structured", req.Schema != nil),
	)

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", entity.ErrEmptyCompletion
	}

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", entity.ErrEmptyCompletion
	}

	ctxzap.Info(ctx, "completion received",
		zap.Int("content_length", len(content)),
		zap.String("finish_reason", resp.Choices[0].FinishReason),
		zap.Int64("total_tokens", resp.Usage.TotalTokens),
		zap.Duration("elapsed", time.Since(start)),
	)

	return content, nil
}
