package extraction

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// buildPDF writes an uncompressed PDF with one Helvetica text line per page.
func buildPDF(t *testing.T, pages ...string) []byte {
	t.Helper()

	var buf bytes.Buffer
	var offsets []int
	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	// 1 catalog, 2 pages, 3 font, then a page + content pair per page.
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	writeObj("<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	writeObj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")
	for i, text := range pages {
		writeObj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R /Resources << /Font << /F1 3 0 R >> >> >>", 5+2*i))
		stream := ""
		if text != "" {
			stream = fmt.Sprintf("BT /F1 24 Tf 72 720 Td (%s) Tj ET", text)
		}
		writeObj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

// buildDOCX zips the minimum set of parts a word processor package needs.
func buildDOCX(t *testing.T, body string) []byte {
	t.Helper()

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `</w:body></w:document>`,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected Format
		ext      string
	}{
		{name: "PDF", filename: "resume.pdf", expected: FormatPDF},
		{name: "Upper-case extension", filename: "Resume.PDF", expected: FormatPDF},
		{name: "DOCX", filename: "jd.docx", expected: FormatDOCX},
		{name: "TXT", filename: "notes.final.txt", expected: FormatTXT},
		{name: "Legacy Word rejected", filename: "resume.doc", ext: "doc"},
		{name: "Image rejected", filename: "scan.png", ext: "png"},
		{name: "No extension", filename: "README", ext: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := ParseFormat(tt.filename)
			if tt.expected != "" {
				if err != nil {
					t.Fatalf("ParseFormat(%q) returned error: %v", tt.filename, err)
				}
				if format != tt.expected {
					t.Errorf("ParseFormat(%q) = %q, expected %q", tt.filename, format, tt.expected)
				}
				return
			}

			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Fatalf("ParseFormat(%q) error = %v, expected ErrUnsupportedFormat", tt.filename, err)
			}
			var unsupported *UnsupportedFormatError
			if !errors.As(err, &unsupported) || unsupported.Ext != tt.ext {
				t.Errorf("ParseFormat(%q) rejected extension %+v, expected %q", tt.filename, unsupported, tt.ext)
			}
		})
	}
}

func TestExtractHelloWorld(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   []byte
	}{
		{name: "PDF", format: FormatPDF, data: buildPDF(t, "Hello World")},
		{name: "DOCX", format: FormatDOCX, data: buildDOCX(t, `<w:p><w:r><w:t>Hello World</w:t></w:r></w:p>`)},
		{name: "TXT", format: FormatTXT, data: []byte("Hello World")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Extract(tt.data, tt.format)
			if err != nil {
				t.Fatalf("Extract returned error: %v", err)
			}
			if got := strings.TrimSuffix(strings.TrimSpace(text), "\n"); got != "Hello World" {
				t.Errorf("Extract() = %q, expected %q", text, "Hello World")
			}
		})
	}
}

func TestExtractPDFPages(t *testing.T) {
	text, err := Extract(buildPDF(t, "First page", "", "Third page"), FormatPDF)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	first := strings.Index(text, "First page")
	third := strings.Index(text, "Third page")
	if first < 0 || third < 0 || first > third {
		t.Fatalf("Extract() = %q, expected both pages in order", text)
	}
	if strings.Count(text, "\n") < 2 {
		t.Errorf("Extract() = %q, expected pages joined by newlines", text)
	}
}

func TestExtractPDFGarbage(t *testing.T) {
	_, err := Extract([]byte("this is not a pdf"), FormatPDF)
	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("Extract() error = %v, expected ErrExtractionFailed", err)
	}
}

func TestExtractDOCXParagraphs(t *testing.T) {
	body := `<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr><w:r><w:t>Jane</w:t></w:r><w:r><w:t xml:space="preserve"> Doe</w:t></w:r></w:p>` +
		`<w:p/>` +
		`<w:p><w:r><w:t>Go</w:t><w:tab/><w:t>5 years</w:t><w:br/><w:t>Remote</w:t></w:r></w:p>`

	text, err := Extract(buildDOCX(t, body), FormatDOCX)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	expected := "Jane Doe\n\nGo\t5 years\nRemote"
	if text != expected {
		t.Errorf("Extract() = %q, expected %q", text, expected)
	}
}

func TestExtractDOCXNotZip(t *testing.T) {
	_, err := Extract([]byte("plain bytes"), FormatDOCX)
	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("Extract() error = %v, expected ErrExtractionFailed", err)
	}
}

type trackingReader struct {
	read bool
}

func (r *trackingReader) Read(p []byte) (int, error) {
	r.read = true
	return 0, errors.New("should not be read")
}

func TestExtractFileUnsupportedNeverReads(t *testing.T) {
	for _, name := range []string{"photo.jpg", "archive.zip", "resume.doc", "noext"} {
		t.Run(name, func(t *testing.T) {
			r := &trackingReader{}
			_, _, err := ExtractFile(name, r)
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Fatalf("ExtractFile(%q) error = %v, expected ErrUnsupportedFormat", name, err)
			}
			if r.read {
				t.Errorf("ExtractFile(%q) read the content of an unsupported file", name)
			}
		})
	}
}

func TestExtractFileTXT(t *testing.T) {
	text, format, err := ExtractFile("jd.txt", strings.NewReader("Senior Go engineer\nKubernetes"))
	if err != nil {
		t.Fatalf("ExtractFile returned error: %v", err)
	}
	if format != FormatTXT {
		t.Errorf("ExtractFile format = %q, expected %q", format, FormatTXT)
	}
	if text != "Senior Go engineer\nKubernetes" {
		t.Errorf("ExtractFile() = %q", text)
	}
}

func TestExtractTXTRejectsInvalidUTF8(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "latin-1 byte", data: []byte("caf\xe9")},
		{name: "truncated sequence", data: []byte("Go \xe6\x97")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.data, FormatTXT)
			if !errors.Is(err, ErrExtractionFailed) {
				t.Fatalf("Extract() error = %v, expected ErrExtractionFailed", err)
			}
		})
	}

	text, err := Extract([]byte("café 日本"), FormatTXT)
	if err != nil || text != "café 日本" {
		t.Errorf("Extract() = %q, %v for valid UTF-8", text, err)
	}
}
