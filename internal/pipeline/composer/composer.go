// Package composer builds the generation prompt and the templated fallback
// content.
package composer

import (
	"fmt"
	"strings"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/config"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
)

// Section headers carry the weight each signal source has in the output.
// They are instruction text, not decoration.
const (
	BrandGuidelinesHeader = "BRAND GUIDELINES (Weight: 33%)"
	IntentSignalsHeader   = "USER INTENT SIGNALS (Weight: 33%)"
	UserContentHeader     = "USER CONTENT FOUNDATION (Weight: 34%)"
	OutputContractHeader  = "OUTPUT REQUIREMENTS"
)

const outputContract = `Return a JSON object with exactly these four fields:
1. "description": 300-500 characters. Lead with the product name, weave in the keywords naturally and state one concrete benefit per sentence.
2. "timestamps": one chapter per line in "H:MM title" format (for example "0:00 Introduction"), derived from the transcript in order.
3. "hashtags": an array of 10-15 hashtags, each starting with "#", mixing English and Korean tags where applicable.
4. "faq": 3-5 question and answer pairs, each written as "Q: question" on one line followed by "A: answer" on the next, pairs separated by a blank line.
Do not add any other field.`

// Prompt is a composed system and user prompt pair.
type Prompt struct {
	System string
	User   string
}

type Composer struct {
	cfg config.PipelineConfig
}

func NewComposer(cfg config.PipelineConfig) *Composer {
	return &Composer{cfg: cfg}
}

// Compose merges guideline chunks, grounding signals and the caller's content
// into one prompt. It is deterministic for the same inputs.
func (c *Composer) Compose(
	snapshot *entity.ConfigSnapshot,
	req *entity.GenerateRequest,
	playbook []entity.PlaybookSearchResult,
	signals []entity.GroundingSignal,
) Prompt {
	var b strings.Builder

	fmt.Fprintf(&b, "Write YouTube marketing content for %s.\n\n", req.ProductName)

	b.WriteString("## " + BrandGuidelinesHeader + "\n")
	if len(playbook) == 0 {
		b.WriteString("No guideline excerpts were retrieved. Follow the brand voice from the system instructions.\n")
	}
	for i, res := range playbook {
		section := res.Metadata.Section
		if section == "" {
			section = "general"
		}
		fmt.Fprintf(&b, "[%d] (%s) %s\n", i+1, section, strings.TrimSpace(res.Content))
	}
	b.WriteString("\n")

	b.WriteString("## " + IntentSignalsHeader + "\n")
	if len(signals) == 0 {
		b.WriteString("No live search signals are available. Rely on the keywords and transcript.\n")
	} else {
		b.WriteString("Terms people currently search for, scored 0-100 by observed interest:\n")
		for _, s := range signals {
			fmt.Fprintf(&b, "- %s: %d\n", s.Term, s.Score)
		}
	}
	b.WriteString("\n")

	b.WriteString("## " + UserContentHeader + "\n")
	fmt.Fprintf(&b, "Product: %s\n", req.ProductName)
	if req.ProductCategory != "" {
		fmt.Fprintf(&b, "Category: %s\n", req.ProductCategory)
	}
	if req.LaunchDate != "" {
		fmt.Fprintf(&b, "Launch date: %s\n", req.LaunchDate)
	}
	if len(req.Keywords) > 0 {
		fmt.Fprintf(&b, "Keywords: %s\n", strings.Join(req.Keywords, ", "))
	}
	if len(req.BriefUSPs) > 0 {
		b.WriteString("Unique selling points:\n")
		for _, usp := range req.BriefUSPs {
			fmt.Fprintf(&b, "- %s\n", usp)
		}
	}
	b.WriteString("Transcript:\n")
	b.WriteString(Truncate(req.SRTContent, c.cfg.TranscriptCharLimit))
	b.WriteString("\n\n")

	b.WriteString("## " + OutputContractHeader + "\n")
	b.WriteString(outputContract)
	b.WriteString("\n")

	system := ""
	if snapshot != nil {
		system = snapshot.SystemPrompt
	}

	return Prompt{
		System: system,
		User:   b.String(),
	}
}

// Truncate cuts s to at most limit characters.
func Truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
