// Package extraction turns uploaded PDF, DOCX and plain-text documents into
// a single text string.
package extraction

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrExtractionFailed  = errors.New("extraction failed")
)

// UnsupportedFormatError names the extension that was rejected.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Ext == "" {
		return "unsupported format: file has no extension"
	}
	return fmt.Sprintf("unsupported format: .%s", e.Ext)
}

func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// ParseFormat maps a file name to its format by extension, case-insensitively.
func ParseFormat(filename string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch Format(ext) {
	case FormatPDF, FormatDOCX, FormatTXT:
		return Format(ext), nil
	}
	return "", &UnsupportedFormatError{Ext: ext}
}

// Extract returns the text content of data. Empty output is not an error;
// callers decide whether a blank document is acceptable.
func Extract(data []byte, format Format) (string, error) {
	switch format {
	case FormatPDF:
		return extractPDF(bytes.NewReader(data), int64(len(data)))
	case FormatDOCX:
		return extractDOCX(bytes.NewReader(data), int64(len(data)))
	case FormatTXT:
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: text file is not valid UTF-8", ErrExtractionFailed)
		}
		return string(data), nil
	}
	return "", &UnsupportedFormatError{Ext: string(format)}
}

// ExtractFile resolves the format from filename before reading r, so an
// unsupported extension never consumes the content.
func ExtractFile(filename string, r io.Reader) (string, Format, error) {
	format, err := ParseFormat(filename)
	if err != nil {
		return "", "", err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", format, fmt.Errorf("%w: failed to read %s: %v", ErrExtractionFailed, filename, err)
	}

	text, err := Extract(data, format)
	if err != nil {
		return "", format, err
	}
	return text, format, nil
}
