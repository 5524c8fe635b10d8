package services

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrIncompleteResult means the reply decoded but lacks a required score.
var ErrIncompleteResult = errors.New("model output is missing required scores")

const notProvided = "Not provided"

type SkillBreakdown struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
	Tools     []string `json:"tools"`
}

// AnalysisResult is a validated scoring reply. Scores are within [0,100]
// and every list is non-nil.
type AnalysisResult struct {
	ATSScore        *int           `json:"ats_score"`
	ClarityScore    *int           `json:"clarity_score"`
	Experience      string         `json:"experience"`
	Education       string         `json:"education"`
	Skills          SkillBreakdown `json:"skills"`
	Strengths       []string       `json:"strengths"`
	Weaknesses      []string       `json:"weaknesses"`
	MissingKeywords []string       `json:"missing_keywords"`
	JobMatches      *int           `json:"job_matches,omitempty"`
}

// Validate reports ErrIncompleteResult unless both scores are present.
func (r *AnalysisResult) Validate() error {
	if r.ATSScore == nil || r.ClarityScore == nil {
		return ErrIncompleteResult
	}
	return nil
}

type MatchResult struct {
	MatchScore  int      `json:"match_score"`
	Suggestions []string `json:"suggestions"`
}

func newAnalysisResult(fields map[string]any) *AnalysisResult {
	result := &AnalysisResult{
		ATSScore:        toScore(fields["ats_score"]),
		ClarityScore:    toScore(fields["clarity_score"]),
		Experience:      orNotProvided(toText(fields["experience"])),
		Education:       orNotProvided(toText(fields["education"])),
		Skills:          toSkills(fields["skills"]),
		Strengths:       toList(fields["strengths"]),
		Weaknesses:      toList(fields["weaknesses"]),
		MissingKeywords: toList(fields["missing_keywords"]),
	}
	if v, ok := fields["job_matches"]; ok {
		if n := toCount(v); n != nil {
			result.JobMatches = n
		}
	}
	return result
}

func newMatchResult(fields map[string]any) *MatchResult {
	score := 0
	if s := toScore(fields["match_score"]); s != nil {
		score = *s
	}
	return &MatchResult{
		MatchScore:  score,
		Suggestions: toList(fields["suggestions"]),
	}
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		s := strings.TrimSpace(n)
		s = strings.TrimSuffix(s, "%")
		if before, _, ok := strings.Cut(s, "/"); ok {
			s = before
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f, err == nil
	}
	return 0, false
}

// toScore rounds and clamps a numeric or numeric-string value to [0,100].
func toScore(v any) *int {
	f, ok := toNumber(v)
	if !ok || math.IsNaN(f) {
		return nil
	}
	score := int(math.Round(math.Max(0, math.Min(100, f))))
	return &score
}

func toCount(v any) *int {
	f, ok := toNumber(v)
	if !ok || math.IsNaN(f) || f < 0 {
		return nil
	}
	n := int(math.Round(math.Min(f, math.MaxInt32)))
	return &n
}

func toText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case []any:
		return strings.Join(toList(t), "; ")
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// toList accepts a list of scalars or a single string. Blank items are dropped.
func toList(v any) []string {
	items := []string{}
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if s := toText(item); s != "" {
				items = append(items, s)
			}
		}
	case string:
		if s := strings.TrimSpace(t); s != "" {
			items = append(items, s)
		}
	}
	return items
}

// toSkills accepts the categorized object or a bare list, which is treated
// as technical skills.
func toSkills(v any) SkillBreakdown {
	switch t := v.(type) {
	case map[string]any:
		return SkillBreakdown{
			Technical: toList(t["technical"]),
			Soft:      toList(t["soft"]),
			Tools:     toList(t["tools"]),
		}
	default:
		return SkillBreakdown{
			Technical: toList(t),
			Soft:      []string{},
			Tools:     []string{},
		}
	}
}

func orNotProvided(s string) string {
	if s == "" {
		return notProvided
	}
	return s
}
