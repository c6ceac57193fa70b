package composer

import "github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"

// ContentSchema is the strict output schema of the four content fields.
func ContentSchema(name, description string) *entity.OutputSchema {
	return &entity.OutputSchema{
		Name:        name,
		Description: description,
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"description": map[string]any{
					"type":        "string",
					"description": "Video description, 300-500 characters.",
				},
				"timestamps": map[string]any{
					"type":        "string",
					"description": "Chapters, one per line, formatted as H:MM title.",
				},
				"hashtags": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "10-15 hashtags each starting with #.",
				},
				"faq": map[string]any{
					"type":        "string",
					"description": "3-5 Q:/A: pairs separated by blank lines.",
				},
			},
			"required":             []string{"description", "timestamps", "hashtags", "faq"},
			"additionalProperties": false,
		},
	}
}
