package extraction

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

const wordprocessingNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

func extractDOCX(r io.ReaderAt, size int64) (string, error) {
	doc, err := docx.ReadDocxFromMemory(r, size)
	if err != nil {
		return "", fmt.Errorf("%w: failed to parse docx: %v", ErrExtractionFailed, err)
	}
	defer doc.Close()

	paragraphs, err := documentParagraphs(doc.Editable().GetContent())
	if err != nil {
		return "", fmt.Errorf("%w: failed to read docx body: %v", ErrExtractionFailed, err)
	}
	return strings.Join(paragraphs, "\n"), nil
}

// documentParagraphs walks word/document.xml and returns the text of each
// <w:p> in document order. Runs are concatenated, <w:tab/> becomes a tab and
// <w:br/> a newline.
func documentParagraphs(content string) ([]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var (
		paragraphs []string
		current    strings.Builder
		depth      int // nesting of open <w:p>
		props      int // inside <w:pPr>, whose <w:tabs> are tab stops, not text
		inText     bool
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if !isWord(t.Name) {
				continue
			}
			switch t.Name.Local {
			case "p":
				if depth == 0 {
					current.Reset()
				}
				depth++
			case "pPr":
				props++
			case "t":
				inText = true
			case "tab":
				if depth > 0 && props == 0 {
					current.WriteByte('\t')
				}
			case "br", "cr":
				if depth > 0 && props == 0 {
					current.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if !isWord(t.Name) {
				continue
			}
			switch t.Name.Local {
			case "p":
				depth--
				if depth == 0 {
					paragraphs = append(paragraphs, current.String())
				}
			case "pPr":
				props--
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText && depth > 0 {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}

func isWord(name xml.Name) bool {
	return name.Space == wordprocessingNS || name.Space == "w"
}
