package generate

import (
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/pipeline/refine"
)

func newBreakdown(generationID string, mode entity.GenerationMode, snapshot *entity.ConfigSnapshot, req *entity.GenerateRequest) *entity.GenerationBreakdown {
	return &entity.GenerationBreakdown{
		GenerationID:     generationID,
		Mode:             mode,
		ConfigVersion:    snapshot.Version,
		PlaybookSections: []string{},
		PlaybookSources:  []entity.PlaybookSource{},
		GroundingSignals: []entity.GroundingSignal{},
		SectionRelevance: []string{},
		Keywords:         nonNil(req.Keywords),
		BriefUSPs:        nonNil(req.BriefUSPs),
	}
}

// fillMissing completes a decoded draft with template values for the fields
// the model left empty.
func fillMissing(draft, template entity.GenerateResponse) entity.GenerateResponse {
	return refine.MergeDraft(template, &entity.ResponsePatch{
		Description: &draft.Description,
		Timestamps:  &draft.Timestamps,
		Hashtags:    draft.Hashtags,
		FAQ:         &draft.FAQ,
	})
}

func qualityScores(c *entity.CritiqueResult, weights entity.QualityWeights) *entity.QualityScores {
	if c == nil {
		return nil
	}
	return &entity.QualityScores{
		Overall:            c.OverallScore,
		BrandVoice:         c.BrandVoiceScore,
		KeywordIntegration: c.KeywordIntegration,
		GEOOptimization:    c.GEOOptimization,
		FAQQuality:         c.FAQQuality,
		Weighted:           weights.Apply(c),
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return append([]string(nil), values...)
}
