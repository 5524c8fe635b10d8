package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNoJSONFound   = errors.New("no JSON object found in model output")
	ErrMalformedJSON = errors.New("malformed JSON in model output")
)

const maxSnippet = 2000

// MalformedJSONError keeps the span that failed to decode.
type MalformedJSONError struct {
	Snippet string
	Err     error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("malformed JSON in model output: %v", e.Err)
}

func (e *MalformedJSONError) Is(target error) bool {
	return target == ErrMalformedJSON
}

func (e *MalformedJSONError) Unwrap() error {
	return e.Err
}

// ExtractJSONObject returns the first top-level balanced {...} span in raw.
// Braces inside JSON string literals do not count toward nesting.
func ExtractJSONObject(raw string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(raw); i++ {
		c := raw[i]

		if start < 0 {
			if c == '{' {
				start = i
				depth = 1
			}
			continue
		}

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], nil
			}
		}
	}

	return "", ErrNoJSONFound
}

// decodeObject extracts and decodes the first object in raw into a generic map.
func decodeObject(raw string) (map[string]any, error) {
	span, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	decoder := json.NewDecoder(bytes.NewReader([]byte(span)))
	decoder.UseNumber()

	var fields map[string]any
	if err := decoder.Decode(&fields); err != nil {
		snippet := span
		if len(snippet) > maxSnippet {
			snippet = snippet[:maxSnippet]
		}
		return nil, &MalformedJSONError{Snippet: snippet, Err: err}
	}
	return fields, nil
}

// ParseAnalysisResult decodes a scoring reply and validates it into an AnalysisResult.
func ParseAnalysisResult(raw string) (*AnalysisResult, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	return newAnalysisResult(fields), nil
}

// ParseMatchResult decodes a matching reply and validates it into a MatchResult.
func ParseMatchResult(raw string) (*MatchResult, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	return newMatchResult(fields), nil
}
