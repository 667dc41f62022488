package extract

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextExtractor defines the interface for the document-extraction
// collaborator. It runs once per uploaded file, before the chat core ever
// sees document context. An empty result means no usable text was found.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

type pdfExtractor struct{}

// NewPDFExtractor returns an extractor for PDF files.
func NewPDFExtractor() TextExtractor {
	return pdfExtractor{}
}

func (pdfExtractor) ExtractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("could not open pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page does not fail the whole document.
			slog.Warn("Could not extract text from pdf page", "page", i, "error", err)
			continue
		}
		if text != "" {
			sb.WriteString(text)
			sb.WriteString("\n\n")
		}
	}
	return sb.String(), nil
}
