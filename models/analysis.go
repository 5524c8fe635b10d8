package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

const (
	TrendUp      = "up"
	TrendDown    = "down"
	TrendNeutral = "neutral"
)

// ValidStatus reports whether s is one of the analysis lifecycle states.
func ValidStatus(s string) bool {
	switch s {
	case StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

func ValidTrend(s string) bool {
	switch s {
	case TrendUp, TrendDown, TrendNeutral:
		return true
	}
	return false
}

// ResumeAnalysis is the stored outcome of scoring one resume upload.
// A completed record carries every derived field; a failed one carries none.
type ResumeAnalysis struct {
	ID              string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ResumeID        *string        `gorm:"type:uuid;index" json:"resume_id,omitempty"`
	FileName        string         `gorm:"size:255;not null;index" json:"file_name"`
	UploadDate      time.Time      `gorm:"not null;index" json:"upload_date"`
	ATSScore        *int           `json:"ats_score"`
	ClarityScore    *int           `json:"clarity_score"`
	SkillsMatch     datatypes.JSON `gorm:"type:jsonb" json:"skills_match"`
	JobMatches      *int           `json:"job_matches"`
	Experience      *string        `gorm:"type:text" json:"experience"`
	Education       *string        `gorm:"type:text" json:"education"`
	Strengths       pq.StringArray `gorm:"type:text[]" json:"strengths"`
	Weaknesses      pq.StringArray `gorm:"type:text[]" json:"weaknesses"`
	MissingKeywords pq.StringArray `gorm:"type:text[]" json:"missing_keywords"`
	Status          string         `gorm:"size:20;not null;default:'processing';index;check:status IN ('processing', 'completed', 'failed')" json:"status"`
	Trend           string         `gorm:"size:20;default:'neutral'" json:"trend"`
	PreviousScore   int            `gorm:"default:0" json:"previous_score"`
	UpdatedAt       time.Time      `json:"updated_at"`

	Resume *Resume `gorm:"foreignKey:ResumeID;constraint:OnDelete:SET NULL" json:"-"`
}

// Resume archives an uploaded resume file alongside what was read out of it.
type Resume struct {
	ID             string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FileName       string         `gorm:"size:255;not null" json:"file_name"`
	StorageKey     string         `gorm:"size:500" json:"storage_key"`
	ContentType    string         `gorm:"size:100" json:"content_type"`
	SizeBytes      int64          `json:"size_bytes"`
	ExtractedText  string         `gorm:"type:text" json:"extracted_text"`
	AnalysisResult datatypes.JSON `gorm:"type:jsonb" json:"analysis_result"`
	UploadedAt     time.Time      `gorm:"not null" json:"uploaded_at"`
}

// AnalysisStats aggregates over every stored analysis.
type AnalysisStats struct {
	Total      int64
	Completed  int64
	AverageATS float64
}
