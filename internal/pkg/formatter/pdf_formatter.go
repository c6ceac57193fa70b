package formatter

import (
	"bytes"
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// Registered family name of the bundled UTF-8 font.
	pdfFontName = "NotoSansKR"

	// The container image copies fonts next to the binary.
	pdfFontRuntimePath = "ttf/NotoSansKR-Regular.ttf"
	pdfFontSourcePath  = "internal/pkg/formatter/ttf/NotoSansKR-Regular.ttf"

	// PDF_FONT_PATH overrides both locations.
	pdfFontEnv = "PDF_FONT_PATH"
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

// resolveFontPath finds a UTF-8 font. Without one, Korean text cannot be
// rendered and the core Helvetica font is used.
func resolveFontPath() string {
	candidates := []string{os.Getenv(pdfFontEnv), pdfFontRuntimePath, pdfFontSourcePath}
	for _, p := range candidates {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func (pf *PDFFormatter) Format(title string, content *entity.GenerateResponse) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	fontName := "Helvetica"
	if fontPath := resolveFontPath(); fontPath != "" {
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		fontName = pdfFontName
	}

	pdf.SetFont(fontName, "B", 20)
	pdf.Cell(0, 10, titleOrDefault(title))
	pdf.Ln(14)

	for _, s := range sections(content) {
		pdf.SetFont(fontName, "B", 14)
		pdf.Cell(0, 8, s.heading)
		pdf.Ln(10)

		pdf.SetFont(fontName, "", 11)
		_, lineHeight := pdf.GetFontSize()
		for _, line := range s.lines {
			pdf.MultiCell(0, lineHeight*1.5, line, "", "", false)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (pf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (pf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
