package entity

// RAGSearchRequest is a single query against the guideline index.
type RAGSearchRequest struct {
	Query   string `json:"query"`
	TopK    int    `json:"top_k"`
	Section string `json:"section,omitempty"`
}

// RAGMultiSearchRequest runs several queries in one call.
type RAGMultiSearchRequest struct {
	Queries      []string `json:"queries"`
	TopKPerQuery int      `json:"top_k_per_query"`
	Deduplicate  bool     `json:"deduplicate"`
}

type RAGSearchResponse struct {
	Results []PlaybookSearchResult `json:"results"`
}
