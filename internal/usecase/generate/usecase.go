package generate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/pipeline/composer"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/pipeline/playbook"
)

// GenerateUsecase runs the request-scoped generation pipeline
type GenerateUsecase struct {
	grounding GroundingFetcher
	retriever PlaybookRetriever
	composer  PromptComposer
	client    *Client
	refiner   RefinementLoop
	configs   ConfigProvider
	callbacks CallbackConnector
	validator RequestValidator
	logger    *zap.Logger

	// inflight tracks background generations started by GenerateAsync
	inflight sync.WaitGroup
}

// NewUsecase creates the generation use case. A nil client switches the
// pipeline into mock mode: every request gets the templated response.
func NewUsecase(
	grounding GroundingFetcher,
	retriever PlaybookRetriever,
	composer PromptComposer,
	client *Client,
	refiner RefinementLoop,
	configs ConfigProvider,
	callbacks CallbackConnector,
	validator RequestValidator,
	logger *zap.Logger,
) *GenerateUsecase {
	return &GenerateUsecase{
		grounding: grounding,
		retriever: retriever,
		composer:  composer,
		client:    client,
		refiner:   refiner,
		configs:   configs,
		callbacks: callbacks,
		validator: validator,
		logger:    logger,
	}
}

// Generate validates req and returns marketing content with its breakdown.
// Only validation errors are returned; every other failure degrades.
func (uc *GenerateUsecase) Generate(ctx context.Context, req *entity.GenerateRequest) (*entity.GenerateResponse, error) {
	if err := uc.validator.ValidateGenerate(req); err != nil {
		return nil, err
	}
	return uc.run(ctx, uuid.New().String(), req), nil
}

// GenerateAsync validates req, then runs the pipeline in the background and
// posts the result to the callback URL. It returns the generation id.
func (uc *GenerateUsecase) GenerateAsync(ctx context.Context, req *entity.AsyncGenerateRequest) (string, error) {
	if err := uc.validator.ValidateGenerateAsync(req); err != nil {
		return "", err
	}

	generationID := uuid.New().String()
	bgCtx := context.WithoutCancel(ctx)

	uc.inflight.Go(func() {
		defer func() {
			if r := recover(); r != nil {
				ctxzap.Error(bgCtx, "async generation panicked",
					zap.String("generation_id", generationID),
					zap.Any("panic", r),
				)
				uc.callbacks.SendError(bgCtx, req.CallbackURL, generationID, "internal error", map[string]any{
					"generation_id": generationID,
				})
			}
		}()

		resp := uc.run(bgCtx, generationID, &req.GenerateRequest)
		uc.callbacks.SendGenerated(bgCtx, req.CallbackURL, generationID, resp)
	})

	return generationID, nil
}

// Wait blocks until every background generation has delivered its callback
// or ctx is done.
func (uc *GenerateUsecase) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		uc.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for async generations: %w", ctx.Err())
	}
}

func (uc *GenerateUsecase) run(ctx context.Context, generationID string, req *entity.GenerateRequest) *entity.GenerateResponse {
	start := time.Now()
	ctx = ctxzap.ToContext(ctx, ctxzap.Extract(ctx).With(
		zap.String("generation_id", generationID),
		zap.String("product_name", req.ProductName),
	))

	snapshot := uc.configs.Snapshot(ctx)

	if uc.client == nil {
		ctxzap.Info(ctx, "no completion credential, serving templated content")
		resp := composer.Fallback(req)
		resp.Breakdown = newBreakdown(generationID, entity.GenerationModeMock, snapshot, req)
		resp.Breakdown.DurationMs = time.Since(start).Milliseconds()
		return &resp
	}

	var launch *time.Time
	if t, ok := req.LaunchTime(); ok {
		launch = &t
	}

	signals := uc.grounding.Fetch(ctx, req.ProductName, req.SignalKeywords(), launch)
	sections := uc.grounding.MapSections(signals)

	results := uc.retriever.Retrieve(ctx, playbook.Query{
		ProductName: req.ProductName,
		Keywords:    req.Keywords,
		Category:    req.ProductCategory,
		Sections:    sections,
	})

	prompt := uc.composer.Compose(snapshot, req, results, signals)

	breakdown := newBreakdown(generationID, entity.GenerationModeLive, snapshot, req)
	breakdown.GroundingSignals = signals
	breakdown.SectionRelevance = sections
	breakdown.PlaybookSections = playbook.Sections(results)
	breakdown.PlaybookSources = playbook.Sources(results)

	draft, err := uc.client.Generate(ctx, prompt)
	if err != nil {
		ctxzap.Warn(ctx, "generation failed, serving templated content", zap.Error(err))
		resp := composer.Fallback(req)
		breakdown.Mode = entity.GenerationModeFallback
		breakdown.DurationMs = time.Since(start).Milliseconds()
		resp.Breakdown = breakdown
		return &resp
	}

	draft = fillMissing(draft, composer.Fallback(req))

	final, critique, iterations := uc.refiner.Run(ctx, draft, req, signals)

	breakdown.RefinementIterations = iterations
	breakdown.QualityScores = qualityScores(critique, snapshot.Weights)
	breakdown.DurationMs = time.Since(start).Milliseconds()
	final.Breakdown = breakdown

	ctxzap.Info(ctx, "content generated",
		zap.String("mode", string(breakdown.Mode)),
		zap.Int("signal_count", len(signals)),
		zap.Int("playbook_count", len(results)),
		zap.Int("iterations", iterations),
		zap.Bool("critiqued", critique != nil),
		zap.Int64("duration_ms", breakdown.DurationMs),
	)

	return &final
}

// IsValidationError reports whether err should reach the caller as a 400.
func IsValidationError(err error) bool {
	return errors.Is(err, entity.ErrMissingField) ||
		errors.Is(err, entity.ErrInvalidFormat) ||
		errors.Is(err, entity.ErrInvalidParameter)
}
