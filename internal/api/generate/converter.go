package generate

import (
	"strings"
	"unicode"
)

type acceptedResponse struct {
	Status       string `json:"status"`
	GenerationID string `json:"generation_id"`
}

// toFilename turns a product name into a safe download name.
func toFilename(productName, ext string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(productName)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash && b.Len() > 0:
			b.WriteByte('-')
			lastDash = true
		}
	}
	name := strings.TrimSuffix(b.String(), "-")
	if name == "" {
		name = "content"
	}
	return name + ext
}
