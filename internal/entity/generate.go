package entity

import (
	"strings"
	"time"
)

// GenerateRequest is the unit of work of the generation pipeline.
type GenerateRequest struct {
	ProductName       string   `json:"productName"`
	SRTContent        string   `json:"srtContent"`
	Keywords          []string `json:"keywords"`
	BriefUSPs         []string `json:"briefUsps"`
	ProductCategory   string   `json:"productCategory,omitempty"`
	LaunchDate        string   `json:"launchDate,omitempty"`
	GroundingKeywords []string `json:"groundingKeywords,omitempty"`
}

// LaunchTime parses LaunchDate; ok is false when it is absent or malformed.
func (r *GenerateRequest) LaunchTime() (time.Time, bool) {
	if strings.TrimSpace(r.LaunchDate) == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(r.LaunchDate))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SignalKeywords returns the caller keywords that bias grounding: the
// explicit grounding keywords when given, otherwise the content keywords.
func (r *GenerateRequest) SignalKeywords() []string {
	if len(r.GroundingKeywords) > 0 {
		return r.GroundingKeywords
	}
	return r.Keywords
}

// AsyncGenerateRequest is a GenerateRequest delivered later to a callback URL.
type AsyncGenerateRequest struct {
	GenerateRequest
	CallbackURL string `json:"callback_url"`
}

// GenerateResponse is the marketing content threaded through generation,
// critique and refinement.
type GenerateResponse struct {
	Description string               `json:"description"`
	Timestamps  string               `json:"timestamps"`
	Hashtags    []string             `json:"hashtags"`
	FAQ         string               `json:"faq"`
	Breakdown   *GenerationBreakdown `json:"breakdown,omitempty"`
}

// Clone returns a deep copy without the breakdown.
func (r GenerateResponse) Clone() GenerateResponse {
	out := GenerateResponse{
		Description: r.Description,
		Timestamps:  r.Timestamps,
		FAQ:         r.FAQ,
	}
	if r.Hashtags != nil {
		out.Hashtags = append([]string(nil), r.Hashtags...)
	}
	return out
}

// ResponsePatch is a refiner answer in which every field may be missing.
type ResponsePatch struct {
	Description *string  `json:"description,omitempty"`
	Timestamps  *string  `json:"timestamps,omitempty"`
	Hashtags    []string `json:"hashtags,omitempty"`
	FAQ         *string  `json:"faq,omitempty"`
}

// GroundingSignal is a scored term of observed search interest.
type GroundingSignal struct {
	Term    string     `json:"term"`
	Score   int        `json:"score"`
	Source  string     `json:"source,omitempty"`
	Recency *time.Time `json:"recency,omitempty"`
}

// PlaybookSearchResult is one brand-guideline chunk from the guideline index.
type PlaybookSearchResult struct {
	ID       string           `json:"id"`
	Content  string           `json:"content"`
	Metadata PlaybookMetadata `json:"metadata"`
	Score    float64          `json:"score"`
}

type PlaybookMetadata struct {
	Section string `json:"section"`
	Title   string `json:"title,omitempty"`
	Source  string `json:"source,omitempty"`
}

// CritiqueResult is the 0-100 scoring of a draft.
type CritiqueResult struct {
	OverallScore       int      `json:"overallScore"`
	BrandVoiceScore    int      `json:"brandVoiceScore"`
	KeywordIntegration int      `json:"keywordIntegration"`
	GEOOptimization    int      `json:"geoOptimization"`
	FAQQuality         int      `json:"faqQuality"`
	Issues             []string `json:"issues"`
	Suggestions        []string `json:"suggestions"`
}

// MinScore is the lowest of the overall score and the four dimensions.
func (c *CritiqueResult) MinScore() int {
	lowest := c.OverallScore
	for _, s := range []int{c.BrandVoiceScore, c.KeywordIntegration, c.GEOOptimization, c.FAQQuality} {
		if s < lowest {
			lowest = s
		}
	}
	return lowest
}

// GenerationMode tells how the returned content was produced.
type GenerationMode string

const (
	GenerationModeLive     GenerationMode = "live"
	GenerationModeFallback GenerationMode = "fallback"
	GenerationModeMock     GenerationMode = "mock"
)

// QualityScores is the final critique as recorded in the breakdown.
type QualityScores struct {
	Overall            int     `json:"overall"`
	BrandVoice         int     `json:"brandVoice"`
	KeywordIntegration int     `json:"keywordIntegration"`
	GEOOptimization    int     `json:"geoOptimization"`
	FAQQuality         int     `json:"faqQuality"`
	Weighted           float64 `json:"weighted"`
}

// PlaybookSource is the provenance of one guideline chunk used in the prompt.
type PlaybookSource struct {
	ID      string  `json:"id"`
	Section string  `json:"section"`
	Score   float64 `json:"score"`
}

// GenerationBreakdown records what influenced the output. It is provenance
// only and never read back by the pipeline.
type GenerationBreakdown struct {
	GenerationID         string            `json:"generationId"`
	Mode                 GenerationMode    `json:"mode"`
	ConfigVersion        string            `json:"configVersion"`
	PlaybookSections     []string          `json:"playbookSections"`
	PlaybookSources      []PlaybookSource  `json:"playbookSources"`
	GroundingSignals     []GroundingSignal `json:"groundingSignals"`
	SectionRelevance     []string          `json:"sectionRelevance"`
	Keywords             []string          `json:"keywords"`
	BriefUSPs            []string          `json:"briefUsps"`
	RefinementIterations int               `json:"refinementIterations"`
	QualityScores        *QualityScores    `json:"qualityScores,omitempty"`
	DurationMs           int64             `json:"durationMs"`
}
