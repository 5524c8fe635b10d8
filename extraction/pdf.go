package extraction

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF joins per-page plain text with newlines. A page the library
// cannot read contributes an empty string.
func extractPDF(r io.ReaderAt, size int64) (text string, err error) {
	// ledongthuc/pdf panics on some malformed object streams.
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("%w: malformed pdf: %v", ErrExtractionFailed, rec)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("%w: failed to open pdf: %v", ErrExtractionFailed, err)
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			slog.Warn("Failed to extract text from PDF page", "page", i, "error", err)
			pages = append(pages, "")
			continue
		}
		pages = append(pages, content)
	}

	return strings.Join(pages, "\n"), nil
}
