package refine

import (
	"strings"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
)

// MergeDraft applies the fields present in patch to base. Missing or blank
// fields keep the base value.
func MergeDraft(base entity.GenerateResponse, patch *entity.ResponsePatch) entity.GenerateResponse {
	out := base.Clone()
	if patch == nil {
		return out
	}

	if patch.Description != nil && strings.TrimSpace(*patch.Description) != "" {
		out.Description = *patch.Description
	}
	if patch.Timestamps != nil && strings.TrimSpace(*patch.Timestamps) != "" {
		out.Timestamps = *patch.Timestamps
	}
	if tags := nonBlank(patch.Hashtags); len(tags) > 0 {
		out.Hashtags = tags
	}
	if patch.FAQ != nil && strings.TrimSpace(*patch.FAQ) != "" {
		out.FAQ = *patch.FAQ
	}
	return out
}

func nonBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
