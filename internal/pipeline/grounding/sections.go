package grounding

import (
	"sort"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
)

// MapSections turns grounding signals into guideline sections ordered by the
// summed score of the signals pointing at them, keeping at most limit. An
// empty result means grounding should not bias retrieval.
func (v *Vocabulary) MapSections(signals []entity.GroundingSignal, limit int) []string {
	scores := make(map[string]int)
	var order []string
	for _, s := range signals {
		for _, section := range v.SectionsFor(s.Term) {
			if _, ok := scores[section]; !ok {
				order = append(order, section)
			}
			scores[section] += s.Score
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	if limit > 0 && len(order) > limit {
		order = order[:limit]
	}
	if order == nil {
		return []string{}
	}
	return order
}
