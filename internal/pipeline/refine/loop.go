// Package refine scores a generated draft and rewrites it while it stays
// below the quality threshold.
package refine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/config"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/pipeline/composer"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/pkg/jsonrepair"
)

type Completer interface {
	Complete(ctx context.Context, req *entity.CompletionRequest) (string, error)
}

type Loop struct {
	llm Completer
	cfg config.PipelineConfig
}

func NewLoop(llm Completer, cfg config.PipelineConfig) *Loop {
	return &Loop{
		llm: llm,
		cfg: cfg,
	}
}

// Run critiques draft and refines it until every score reaches the threshold
// or the refinement budget is spent. It never fails: a failed critique ends
// the loop with a nil critique, a failed refinement keeps the current draft.
// The returned count is the number of refinements applied.
func (l *Loop) Run(
	ctx context.Context,
	draft entity.GenerateResponse,
	req *entity.GenerateRequest,
	signals []entity.GroundingSignal,
) (entity.GenerateResponse, *entity.CritiqueResult, int) {
	current := draft.Clone()
	iterations := 0

	for {
		critique, err := l.Critique(ctx, current, req, signals)
		if err != nil {
			ctxzap.Warn(ctx, "critique failed, keeping current draft",
				zap.Int("iterations", iterations),
				zap.Error(err),
			)
			return current, nil, iterations
		}

		lowest := critique.MinScore()
		if lowest >= l.cfg.ScoreThreshold {
			ctxzap.Info(ctx, "draft accepted",
				zap.Int("min_score", lowest),
				zap.Int("iterations", iterations),
			)
			return current, critique, iterations
		}

		if iterations >= l.cfg.MaxRefinementIterations {
			ctxzap.Info(ctx, "refinement budget spent",
				zap.Int("min_score", lowest),
				zap.Int("iterations", iterations),
			)
			return current, critique, iterations
		}

		patch, err := l.Refine(ctx, current, critique, req)
		if err != nil {
			ctxzap.Warn(ctx, "refinement failed, keeping current draft",
				zap.Int("iterations", iterations),
				zap.Error(err),
			)
			return current, critique, iterations
		}

		current = MergeDraft(current, patch)
		iterations++
	}
}

// Critique scores a draft.
func (l *Loop) Critique(
	ctx context.Context,
	draft entity.GenerateResponse,
	req *entity.GenerateRequest,
	signals []entity.GroundingSignal,
) (*entity.CritiqueResult, error) {
	start := time.Now()

	raw, err := l.complete(ctx, &entity.CompletionRequest{
		SystemPrompt: critiqueSystemPrompt,
		UserPrompt:   critiquePrompt(draft, req, signals),
		Schema:       critiqueSchema,
		Temperature:  0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrCritique, err)
	}

	reply, err := jsonrepair.Decode[critiqueReply](raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrCritique, err)
	}
	critique, err := reply.result()
	if err != nil {
		return nil, err
	}

	ctxzap.Debug(ctx, "draft critiqued",
		zap.Int("overall", critique.OverallScore),
		zap.Int("brand_voice", critique.BrandVoiceScore),
		zap.Int("keyword_integration", critique.KeywordIntegration),
		zap.Int("geo_optimization", critique.GEOOptimization),
		zap.Int("faq_quality", critique.FAQQuality),
		zap.Int("issue_count", len(critique.Issues)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return critique, nil
}

// critiqueReply keeps absent scores distinguishable from a zero score, since
// a repaired truncated reply drops its trailing fields.
type critiqueReply struct {
	OverallScore       *int     `json:"overallScore"`
	BrandVoiceScore    *int     `json:"brandVoiceScore"`
	KeywordIntegration *int     `json:"keywordIntegration"`
	GEOOptimization    *int     `json:"geoOptimization"`
	FAQQuality         *int     `json:"faqQuality"`
	Issues             []string `json:"issues"`
	Suggestions        []string `json:"suggestions"`
}

func (r critiqueReply) result() (*entity.CritiqueResult, error) {
	var missing []string
	score := func(name string, v *int) int {
		if v == nil {
			missing = append(missing, name)
			return 0
		}
		return *v
	}

	c := &entity.CritiqueResult{
		OverallScore:       score("overallScore", r.OverallScore),
		BrandVoiceScore:    score("brandVoiceScore", r.BrandVoiceScore),
		KeywordIntegration: score("keywordIntegration", r.KeywordIntegration),
		GEOOptimization:    score("geoOptimization", r.GEOOptimization),
		FAQQuality:         score("faqQuality", r.FAQQuality),
		Issues:             r.Issues,
		Suggestions:        r.Suggestions,
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing scores %s", entity.ErrCritique, strings.Join(missing, ", "))
	}
	return c, nil
}

// Refine asks for a rewrite addressing the critique. Fields the model leaves
// out stay nil in the patch.
func (l *Loop) Refine(
	ctx context.Context,
	draft entity.GenerateResponse,
	critique *entity.CritiqueResult,
	req *entity.GenerateRequest,
) (*entity.ResponsePatch, error) {
	raw, err := l.complete(ctx, &entity.CompletionRequest{
		SystemPrompt: refineSystemPrompt,
		UserPrompt:   refinePrompt(draft, critique, req),
		Schema:       composer.ContentSchema(entity.SchemaContentRefine, "Revised marketing content."),
	})
	if err != nil {
		return nil, fmt.Errorf("refine: %w", err)
	}

	patch, err := jsonrepair.Decode[entity.ResponsePatch](raw)
	if err != nil {
		return nil, fmt.Errorf("refine: %w", err)
	}
	return &patch, nil
}

func (l *Loop) complete(ctx context.Context, req *entity.CompletionRequest) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, l.cfg.CallTimeout)
	defer cancel()
	return l.llm.Complete(callCtx, req)
}
