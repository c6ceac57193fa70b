package grounding

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
)

type termTally struct {
	term    string
	count   int
	source  string
	recency *time.Time
}

// ExtractSignals counts intent terms and caller keywords across the titles and
// snippets of results, then normalizes counts against the largest one so the
// top signal scores 100. Keyword hits count keywordWeight times. Ties keep the
// order in which terms were first seen, walking results in order and, within
// a result, keywords before vocabulary terms.
func ExtractSignals(
	results []entity.WebSearchResult,
	vocab *Vocabulary,
	keywords []string,
	keywordWeight int,
	limit int,
) []entity.GroundingSignal {
	if keywordWeight < 1 {
		keywordWeight = 1
	}

	type weighted struct {
		matcher termMatcher
		weight  int
	}

	var matchers []weighted
	seen := make(map[string]bool)
	for _, kw := range keywords {
		t := NormalizeTerm(kw)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		matchers = append(matchers, weighted{matcher: newTermMatcher(t), weight: keywordWeight})
	}
	for _, t := range vocab.terms {
		if seen[t] {
			continue
		}
		seen[t] = true
		matchers = append(matchers, weighted{matcher: newTermMatcher(t), weight: 1})
	}

	tallies := make(map[string]*termTally)
	var order []*termTally
	for _, res := range results {
		text := strings.ToLower(res.Title + " " + res.Snippet)
		for _, m := range matchers {
			n := m.matcher.count(text)
			if n == 0 {
				continue
			}
			t, ok := tallies[m.matcher.term]
			if !ok {
				t = &termTally{term: m.matcher.term, source: res.URL}
				tallies[m.matcher.term] = t
				order = append(order, t)
			}
			t.count += n * m.weight
			if res.PublishedDate != nil && (t.recency == nil || res.PublishedDate.After(*t.recency)) {
				d := *res.PublishedDate
				t.recency = &d
			}
		}
	}

	return normalize(order, limit)
}

func normalize(order []*termTally, limit int) []entity.GroundingSignal {
	maxCount := 0
	for _, t := range order {
		if t.count > maxCount {
			maxCount = t.count
		}
	}
	if maxCount == 0 {
		return []entity.GroundingSignal{}
	}

	signals := make([]entity.GroundingSignal, 0, len(order))
	for _, t := range order {
		signals = append(signals, entity.GroundingSignal{
			Term:    t.term,
			Score:   int(math.Round(float64(t.count) * 100 / float64(maxCount))),
			Source:  t.source,
			Recency: t.recency,
		})
	}

	sort.SliceStable(signals, func(i, j int) bool {
		return signals[i].Score > signals[j].Score
	})

	if limit > 0 && len(signals) > limit {
		signals = signals[:limit]
	}
	return signals
}

// FilterByLaunch drops results published before the launch date. Results
// without a date are kept.
func FilterByLaunch(results []entity.WebSearchResult, launch time.Time) []entity.WebSearchResult {
	cutoff := time.Date(launch.Year(), launch.Month(), launch.Day(), 0, 0, 0, 0, time.UTC)
	out := results[:0:0]
	for _, r := range results {
		if r.PublishedDate != nil && r.PublishedDate.UTC().Before(cutoff) {
			continue
		}
		out = append(out, r)
	}
	return out
}
