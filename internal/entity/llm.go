package entity

// CompletionRequest is one call to the completion service.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	// Schema, when set, is enforced as a strict JSON output schema.
	Schema *OutputSchema
	// Temperature and MaxTokens override the connector defaults when non-zero.
	Temperature float64
	MaxTokens   int64
}

// OutputSchema is a named JSON schema for structured output.
type OutputSchema struct {
	Name        string
	Description string
	Schema      map[string]any
}

// Output schema names used by the generation pipeline.
const (
	SchemaMarketingContent = "marketing_content"
	SchemaContentCritique  = "content_critique"
	SchemaContentRefine    = "content_refinement"
)
