package refine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/config"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
)

const (
	passingCritique = `{"overallScore":90,"brandVoiceScore":85,"keywordIntegration":88,"geoOptimization":80,"faqQuality":92,"issues":[],"suggestions":[]}`
	failingCritique = `{"overallScore":90,"brandVoiceScore":85,"keywordIntegration":60,"geoOptimization":82,"faqQuality":92,"issues":["keyword camera missing"],"suggestions":["mention the camera"]}`
)

// scriptedLLM answers each schema with the next queued reply.
type scriptedLLM struct {
	replies map[string][]string
	errs    map[string]error
	calls   map[string]int
}

func newScriptedLLM() *scriptedLLM {
	return &scriptedLLM{
		replies: make(map[string][]string),
		errs:    make(map[string]error),
		calls:   make(map[string]int),
	}
}

func (s *scriptedLLM) Complete(_ context.Context, req *entity.CompletionRequest) (string, error) {
	name := req.Schema.Name
	s.calls[name]++
	if err := s.errs[name]; err != nil {
		return "", err
	}
	queue := s.replies[name]
	if len(queue) == 0 {
		return "", errors.New("no scripted reply")
	}
	reply := queue[0]
	if len(queue) > 1 {
		s.replies[name] = queue[1:]
	}
	return reply, nil
}

func testDraft() entity.GenerateResponse {
	return entity.GenerateResponse{
		Description: "Original description",
		Timestamps:  "0:00 Intro",
		Hashtags:    []string{"#Original", "#오리지널"},
		FAQ:         "Q: Original?\nA: Yes.",
	}
}

func testRequest() *entity.GenerateRequest {
	return &entity.GenerateRequest{ProductName: "Galaxy S25", Keywords: []string{"camera"}}
}

func TestLoop_AcceptsWithoutRefinement(t *testing.T) {
	llm := newScriptedLLM()
	llm.replies[entity.SchemaContentCritique] = []string{passingCritique}
	loop := NewLoop(llm, config.DefaultPipelineConfig())

	final, critique, iterations := loop.Run(context.Background(), testDraft(), testRequest(), nil)

	assert.Equal(t, 0, iterations)
	assert.Equal(t, 0, llm.calls[entity.SchemaContentRefine])
	assert.Equal(t, 1, llm.calls[entity.SchemaContentCritique])
	require.NotNil(t, critique)
	assert.Equal(t, 90, critique.OverallScore)
	assert.Equal(t, testDraft(), final)
}

func TestLoop_RefinesOnceBelowThreshold(t *testing.T) {
	llm := newScriptedLLM()
	llm.replies[entity.SchemaContentCritique] = []string{failingCritique}
	llm.replies[entity.SchemaContentRefine] = []string{
		"```json\n{\"description\":\"Refined description with camera\",\"timestamps\":\"\",\"faq\":\"Q: Camera?\\nA: Great.\"}\n```",
	}
	loop := NewLoop(llm, config.DefaultPipelineConfig())

	final, critique, iterations := loop.Run(context.Background(), testDraft(), testRequest(), nil)

	assert.Equal(t, 1, iterations)
	assert.Equal(t, 1, llm.calls[entity.SchemaContentRefine])
	assert.Equal(t, 2, llm.calls[entity.SchemaContentCritique])
	require.NotNil(t, critique)
	assert.Equal(t, 60, critique.KeywordIntegration)

	assert.Equal(t, "Refined description with camera", final.Description)
	assert.Equal(t, "0:00 Intro", final.Timestamps)
	assert.Equal(t, []string{"#Original", "#오리지널"}, final.Hashtags)
	assert.Equal(t, "Q: Camera?\nA: Great.", final.FAQ)
}

func TestLoop_AcceptsAfterRefinement(t *testing.T) {
	llm := newScriptedLLM()
	llm.replies[entity.SchemaContentCritique] = []string{failingCritique, passingCritique}
	llm.replies[entity.SchemaContentRefine] = []string{`{"description":"Better","timestamps":"0:00 Start","hashtags":["#New"],"faq":"Q: a?\nA: b."}`}
	cfg := config.DefaultPipelineConfig()
	cfg.MaxRefinementIterations = 3
	loop := NewLoop(llm, cfg)

	final, critique, iterations := loop.Run(context.Background(), testDraft(), testRequest(), nil)

	assert.Equal(t, 1, iterations)
	require.NotNil(t, critique)
	assert.Equal(t, 88, critique.KeywordIntegration)
	assert.Equal(t, []string{"#New"}, final.Hashtags)
}

func TestLoop_ZeroBudgetNeverRefines(t *testing.T) {
	llm := newScriptedLLM()
	llm.replies[entity.SchemaContentCritique] = []string{failingCritique}
	cfg := config.DefaultPipelineConfig()
	cfg.MaxRefinementIterations = 0
	loop := NewLoop(llm, cfg)

	final, critique, iterations := loop.Run(context.Background(), testDraft(), testRequest(), nil)

	assert.Equal(t, 0, iterations)
	assert.Equal(t, 0, llm.calls[entity.SchemaContentRefine])
	assert.NotNil(t, critique)
	assert.Equal(t, testDraft(), final)
}

func TestLoop_CritiqueFailureReturnsNil(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*scriptedLLM)
	}{
		{
			name: "call error",
			setup: func(s *scriptedLLM) {
				s.errs[entity.SchemaContentCritique] = errors.New("rate limited")
			},
		},
		{
			name: "unparseable output",
			setup: func(s *scriptedLLM) {
				s.replies[entity.SchemaContentCritique] = []string{"I cannot score this."}
			},
		},
		{
			name: "truncated reply missing scores",
			setup: func(s *scriptedLLM) {
				s.replies[entity.SchemaContentCritique] = []string{`{"overallScore":95,"brandVoiceScore":92,"keywordIntegration":90,"geoOptimization":91`}
				s.replies[entity.SchemaContentRefine] = []string{`{"description":"rewritten"}`}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := newScriptedLLM()
			tt.setup(llm)
			loop := NewLoop(llm, config.DefaultPipelineConfig())

			final, critique, iterations := loop.Run(context.Background(), testDraft(), testRequest(), nil)

			assert.Nil(t, critique)
			assert.Equal(t, 0, iterations)
			assert.Equal(t, testDraft(), final)
			assert.Equal(t, 0, llm.calls[entity.SchemaContentRefine])
		})
	}
}

func TestLoop_RefineFailureKeepsDraft(t *testing.T) {
	llm := newScriptedLLM()
	llm.replies[entity.SchemaContentCritique] = []string{failingCritique}
	llm.errs[entity.SchemaContentRefine] = errors.New("timeout")
	loop := NewLoop(llm, config.DefaultPipelineConfig())

	final, critique, iterations := loop.Run(context.Background(), testDraft(), testRequest(), nil)

	assert.Equal(t, 0, iterations)
	require.NotNil(t, critique)
	assert.Equal(t, 60, critique.KeywordIntegration)
	assert.Equal(t, testDraft(), final)
}

func TestCritique_WrapsSentinel(t *testing.T) {
	llm := newScriptedLLM()
	llm.errs[entity.SchemaContentCritique] = errors.New("boom")
	loop := NewLoop(llm, config.DefaultPipelineConfig())

	_, err := loop.Critique(context.Background(), testDraft(), testRequest(), nil)

	assert.ErrorIs(t, err, entity.ErrCritique)
}

func TestCritique_MissingScores(t *testing.T) {
	llm := newScriptedLLM()
	llm.replies[entity.SchemaContentCritique] = []string{`{"overallScore":95,"brandVoiceScore":92,"geoOptimization":91,"faqQuality":90}`}
	loop := NewLoop(llm, config.DefaultPipelineConfig())

	critique, err := loop.Critique(context.Background(), testDraft(), testRequest(), nil)

	assert.Nil(t, critique)
	require.ErrorIs(t, err, entity.ErrCritique)
	assert.Contains(t, err.Error(), "keywordIntegration")
}

func TestCritique_ExplicitZeroIsAScore(t *testing.T) {
	llm := newScriptedLLM()
	llm.replies[entity.SchemaContentCritique] = []string{`{"overallScore":40,"brandVoiceScore":0,"keywordIntegration":50,"geoOptimization":60,"faqQuality":70}`}
	loop := NewLoop(llm, config.DefaultPipelineConfig())

	critique, err := loop.Critique(context.Background(), testDraft(), testRequest(), nil)

	require.NoError(t, err)
	assert.Equal(t, 0, critique.BrandVoiceScore)
	assert.Equal(t, 0, critique.MinScore())
}
