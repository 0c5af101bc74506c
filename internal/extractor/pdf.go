package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrBadDocument is returned when the uploaded bytes cannot be read as a PDF.
// There is no fallback for this: without extracted text the rest of the
// pipeline has nothing to work with.
var ErrBadDocument = errors.New("not a valid PDF document")

// ExtractText pulls plain text out of an in-memory PDF, page by page.
// Pages are visited in document order; pages that yield no text contribute
// nothing. Returns the empty string when no page has extractable text.
func ExtractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadDocument, err)
	}

	var pages []string
	numPages := reader.NumPage()

	for pageIndex := 1; pageIndex <= numPages; pageIndex++ {
		p := reader.Page(pageIndex)
		if p.V.IsNull() {
			continue
		}

		text, err := p.GetPlainText(nil)
		if err != nil {
			text = ""
		}

		if len(strings.TrimSpace(text)) > 0 {
			pages = append(pages, text)
		}
	}

	return joinPages(pages), nil
}

// joinPages concatenates per-page text with a single newline between pages.
func joinPages(pages []string) string {
	return strings.Join(pages, "\n")
}
