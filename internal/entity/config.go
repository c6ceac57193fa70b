package entity

import "time"

// QualityWeights blends the four critique dimensions into one number.
type QualityWeights struct {
	BrandVoice         float64 `json:"brandVoice"`
	KeywordIntegration float64 `json:"keywordIntegration"`
	GEOOptimization    float64 `json:"geoOptimization"`
	FAQQuality         float64 `json:"faqQuality"`
}

func DefaultQualityWeights() QualityWeights {
	return QualityWeights{
		BrandVoice:         0.25,
		KeywordIntegration: 0.25,
		GEOOptimization:    0.25,
		FAQQuality:         0.25,
	}
}

// Apply returns the weighted score of c, normalized by the weight sum.
func (w QualityWeights) Apply(c *CritiqueResult) float64 {
	total := w.BrandVoice + w.KeywordIntegration + w.GEOOptimization + w.FAQQuality
	if c == nil || total <= 0 {
		return 0
	}
	sum := w.BrandVoice*float64(c.BrandVoiceScore) +
		w.KeywordIntegration*float64(c.KeywordIntegration) +
		w.GEOOptimization*float64(c.GEOOptimization) +
		w.FAQQuality*float64(c.FAQQuality)
	return sum / total
}

// ConfigSnapshot is the read-only configuration a single request runs with.
type ConfigSnapshot struct {
	Version      string         `json:"version"`
	SystemPrompt string         `json:"systemPrompt"`
	Weights      QualityWeights `json:"weights"`
	LoadedAt     time.Time      `json:"loadedAt"`
}

// SystemPromptRecord is the active system prompt row of the prompt store.
type SystemPromptRecord struct {
	ID        string
	Name      string
	Version   int
	Content   string
	UpdatedAt time.Time
}

// QualityWeightsRecord is the active weight row of the prompt store.
type QualityWeightsRecord struct {
	ID        string
	Name      string
	Weights   QualityWeights
	UpdatedAt time.Time
}
