package entity

import (
	"encoding/json"
	"strings"
	"time"
)

// WebSearchRequest is one query against the web-search API.
type WebSearchRequest struct {
	Query       string `json:"query"`
	MaxResults  int    `json:"max_results"`
	SearchDepth string `json:"search_depth,omitempty"`
}

type WebSearchResponse struct {
	Results []WebSearchResult `json:"results"`
}

// WebSearchResult is a single hit; PublishedDate is optional.
type WebSearchResult struct {
	Title         string     `json:"title"`
	URL           string     `json:"url"`
	Snippet       string     `json:"content"`
	PublishedDate *time.Time `json:"published_date,omitempty"`
}

var publishedDateLayouts = []string{
	time.RFC3339,
	time.DateOnly,
	time.DateTime,
	time.RFC1123,
	time.RFC1123Z,
}

// UnmarshalJSON accepts the date layouts search providers actually send.
// An unknown layout leaves PublishedDate nil instead of failing the response.
func (r *WebSearchResult) UnmarshalJSON(data []byte) error {
	type plain WebSearchResult
	var wire struct {
		plain
		PublishedDate json.RawMessage `json:"published_date"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*r = WebSearchResult(wire.plain)
	r.PublishedDate = parsePublishedDate(wire.PublishedDate)
	return nil
}

func parsePublishedDate(raw json.RawMessage) *time.Time {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range publishedDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
