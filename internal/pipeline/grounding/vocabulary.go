package grounding

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var vocabularyYAML []byte

type vocabularyFile struct {
	Vocabulary struct {
		Features   []string `yaml:"features"`
		Sentiment  []string `yaml:"sentiment"`
		Comparison []string `yaml:"comparison"`
		Localized  []string `yaml:"localized"`
	} `yaml:"vocabulary"`
	Sections map[string][]string `yaml:"sections"`
}

// Vocabulary is the fixed set of intent terms plus the term to
// guideline-section lookup table.
type Vocabulary struct {
	terms    []string
	sections map[string][]string
}

var defaultVocabulary = mustLoadVocabulary(vocabularyYAML)

// DefaultVocabulary returns the embedded vocabulary.
func DefaultVocabulary() *Vocabulary {
	return defaultVocabulary
}

// LoadVocabulary parses a vocabulary document.
func LoadVocabulary(data []byte) (*Vocabulary, error) {
	var f vocabularyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}

	v := &Vocabulary{sections: make(map[string][]string, len(f.Sections))}
	seen := make(map[string]bool)
	groups := [][]string{f.Vocabulary.Features, f.Vocabulary.Sentiment, f.Vocabulary.Comparison, f.Vocabulary.Localized}
	for _, group := range groups {
		for _, term := range group {
			t := NormalizeTerm(term)
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			v.terms = append(v.terms, t)
		}
	}

	for term, sections := range f.Sections {
		v.sections[NormalizeTerm(term)] = sections
	}

	return v, nil
}

func mustLoadVocabulary(data []byte) *Vocabulary {
	v, err := LoadVocabulary(data)
	if err != nil {
		panic(err)
	}
	return v
}

// Terms returns the intent terms in declaration order.
func (v *Vocabulary) Terms() []string {
	return append([]string(nil), v.terms...)
}

// SectionsFor returns the guideline sections a normalized term maps to.
func (v *Vocabulary) SectionsFor(term string) []string {
	return v.sections[NormalizeTerm(term)]
}

// NormalizeTerm lowercases and collapses whitespace.
func NormalizeTerm(term string) string {
	return strings.Join(strings.Fields(strings.ToLower(term)), " ")
}

// termMatcher counts occurrences of one term in lowercased text.
type termMatcher struct {
	term string
	re   *regexp.Regexp
}

func newTermMatcher(term string) termMatcher {
	if isASCII(term) {
		// Whole words only, with an optional plural ending.
		return termMatcher{
			term: term,
			re:   regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `(?:s|es)?\b`),
		}
	}
	return termMatcher{term: term}
}

func (m termMatcher) count(lowered string) int {
	if m.re != nil {
		return len(m.re.FindAllStringIndex(lowered, -1))
	}
	return strings.Count(lowered, m.term)
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
