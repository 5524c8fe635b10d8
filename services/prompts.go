package services

import (
	"strings"
	"unicode/utf8"
)

// MaxResumeChars bounds how much resume text is embedded in the scoring prompt.
const MaxResumeChars = 15000

const scoringTemplate = `
[INST]
You are a strict resume evaluator used by ResumeWorded and top HR firms.

Act like an expert recruiter. Be brutally honest and realistic. Most resumes are average or below. Only give high scores if they truly deserve it.

Scoring Guide:
- Poor resumes: 25–45
- Average: 50–65
- Good: 70–80
- Excellent: 85+ (very rare)

DO NOT return inflated scores.
DO NOT use placeholders like "e.g.", "etc.", or "null".
ONLY return valid JSON with this format, and nothing else:

{
  "ats_score": 0-100,
  "clarity_score": 0-100,
  "experience": "Summarize candidate's experience and projects",
  "education": "Summarize degrees and certifications",
  "skills": {
    "technical": ["List technical skills"],
    "soft": ["List soft skills"],
    "tools": ["List tools, IDEs, platforms"]
  },
  "strengths": [
    "What the resume does well"
  ],
  "weaknesses": [
    "Major flaws: e.g. no metrics, no tools, no internships"
  ],
  "missing_keywords": [
    "List missing job-relevant keywords like 'Agile', 'CI/CD', etc."
  ]
}

Evaluate using:
- ATS formatting
- Grammar, layout, consistency
- Keyword relevance
- Use of tools, metrics, and achievements
- Technical + soft skills

Resume:
{{RESUME}}
[/INST]
`

const matchTemplate = `You are an AI assistant that matches resumes with job descriptions.

Here is the RESUME:
"""{{RESUME}}"""

Here is the JOB DESCRIPTION:
"""{{JD}}"""

Instructions:
- Compare the resume and job description.
- Give a match score from 0 to 100.
- Suggest exactly 3 improvements to make the resume better match the job description.

Return ONLY a JSON object with this format (and nothing else):
{
  "match_score": 85,
  "suggestions": [
    "Add experience with cloud technologies",
    "Include project management skills",
    "Highlight familiarity with Docker and Kubernetes"
  ]
}`

// BuildScoringPrompt renders the single-resume scoring prompt.
func BuildScoringPrompt(resumeText string) string {
	return strings.Replace(scoringTemplate, "{{RESUME}}", truncateRunes(resumeText, MaxResumeChars), 1)
}

// BuildMatchPrompt renders the resume-to-job-description prompt with both texts in full.
func BuildMatchPrompt(resumeText, jdText string) string {
	return strings.NewReplacer("{{RESUME}}", resumeText, "{{JD}}", jdText).Replace(matchTemplate)
}

// truncateRunes cuts s to at most n characters without splitting a UTF-8 sequence.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
