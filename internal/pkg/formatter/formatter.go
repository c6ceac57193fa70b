package formatter

import (
	"fmt"
	"strings"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
)

const defaultTitle = "Marketing Content"

type Formatter interface {
	Format(title string, content *entity.GenerateResponse) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", entity.ErrInvalidParameter, format)
	}
}

// section is one titled block of the exported document.
type section struct {
	heading string
	lines   []string
}

func sections(content *entity.GenerateResponse) []section {
	return []section{
		{heading: "Description", lines: []string{content.Description}},
		{heading: "Timestamps", lines: splitLines(content.Timestamps)},
		{heading: "Hashtags", lines: []string{strings.Join(content.Hashtags, " ")}},
		{heading: "FAQ", lines: splitLines(content.FAQ)},
	}
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func titleOrDefault(title string) string {
	if strings.TrimSpace(title) == "" {
		return defaultTitle
	}
	return title
}
