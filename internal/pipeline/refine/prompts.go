package refine

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
)

const critiqueSystemPrompt = `You are a strict brand content reviewer. Score marketing content from 0 to 100 on each dimension:
- brandVoiceScore: matches the brand tone of voice, confident and benefit-led.
- keywordIntegration: every keyword appears naturally.
- geoOptimization: structured for answer engines, with clear entities and question-led phrasing.
- faqQuality: 3-5 useful Q:/A: pairs a shopper would actually ask.
Give an overallScore and list concrete issues and suggestions. Answer only with JSON.`

const refineSystemPrompt = `You are a brand copywriter revising marketing content after review.
Rewrite the content so that every listed issue is fixed and every suggestion is applied.
Keep what already works. Keep the same four fields and their format rules. Answer only with JSON.`

var critiqueSchema = &entity.OutputSchema{
	Name:        entity.SchemaContentCritique,
	Description: "Scores and review notes for a marketing content draft.",
	Schema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"overallScore":       scoreProperty(),
			"brandVoiceScore":    scoreProperty(),
			"keywordIntegration": scoreProperty(),
			"geoOptimization":    scoreProperty(),
			"faqQuality":         scoreProperty(),
			"issues":             stringList(),
			"suggestions":        stringList(),
		},
		"required": []string{
			"overallScore", "brandVoiceScore", "keywordIntegration",
			"geoOptimization", "faqQuality", "issues", "suggestions",
		},
		"additionalProperties": false,
	},
}

func scoreProperty() map[string]any {
	return map[string]any{"type": "integer", "minimum": 0, "maximum": 100}
}

func stringList() map[string]any {
	return map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
}

func critiquePrompt(draft entity.GenerateResponse, req *entity.GenerateRequest, signals []entity.GroundingSignal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Product: %s\n", req.ProductName)
	if len(req.Keywords) > 0 {
		fmt.Fprintf(&b, "Keywords: %s\n", strings.Join(req.Keywords, ", "))
	}
	if len(signals) > 0 {
		terms := make([]string, 0, len(signals))
		for _, s := range signals {
			terms = append(terms, fmt.Sprintf("%s (%d)", s.Term, s.Score))
		}
		fmt.Fprintf(&b, "Trending search terms: %s\n", strings.Join(terms, ", "))
	}
	b.WriteString("\nContent to review:\n")
	b.WriteString(draftJSON(draft))
	return b.String()
}

func refinePrompt(draft entity.GenerateResponse, critique *entity.CritiqueResult, req *entity.GenerateRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Product: %s\n", req.ProductName)
	if len(req.Keywords) > 0 {
		fmt.Fprintf(&b, "Keywords: %s\n", strings.Join(req.Keywords, ", "))
	}
	fmt.Fprintf(&b, "\nReview scores: overall %d, brand voice %d, keyword integration %d, GEO %d, FAQ %d\n",
		critique.OverallScore, critique.BrandVoiceScore, critique.KeywordIntegration,
		critique.GEOOptimization, critique.FAQQuality)

	b.WriteString("\nIssues:\n")
	writeList(&b, critique.Issues)
	b.WriteString("\nSuggestions:\n")
	writeList(&b, critique.Suggestions)

	b.WriteString("\nCurrent content:\n")
	b.WriteString(draftJSON(draft))
	return b.String()
}

func writeList(b *strings.Builder, items []string) {
	if len(items) == 0 {
		b.WriteString("- none\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func draftJSON(draft entity.GenerateResponse) string {
	data, err := json.MarshalIndent(draft.Clone(), "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", draft)
	}
	return string(data)
}
