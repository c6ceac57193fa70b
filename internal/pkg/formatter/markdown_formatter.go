package formatter

import (
	"bytes"
	"fmt"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(title string, content *entity.GenerateResponse) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n", titleOrDefault(title))
	for _, s := range sections(content) {
		fmt.Fprintf(&buf, "\n## %s\n\n", s.heading)
		for _, line := range s.lines {
			// Two trailing spaces keep one chapter or FAQ line per rendered line.
			fmt.Fprintf(&buf, "%s  \n", line)
		}
	}
	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
