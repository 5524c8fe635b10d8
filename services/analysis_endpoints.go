package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/resumeiq/backend/extraction"
	"github.com/resumeiq/backend/models"
	"github.com/resumeiq/backend/repository"
	"github.com/resumeiq/backend/storage"
	"gorm.io/datatypes"
)

const recentAnalysesLimit = 5

// AnalysisStore is the persistence the analysis endpoints need.
type AnalysisStore interface {
	CreateAnalysis(ctx context.Context, analysis *models.ResumeAnalysis) error
	CreateAnalysisWithResume(ctx context.Context, resume *models.Resume, analysis *models.ResumeAnalysis) error
	GetAnalysis(ctx context.Context, id string) (*models.ResumeAnalysis, error)
	UpdateAnalysis(ctx context.Context, analysis *models.ResumeAnalysis) error
	DeleteAnalysis(ctx context.Context, id string) (bool, error)
	ListAnalyses(ctx context.Context, filter repository.AnalysisFilter) ([]models.ResumeAnalysis, error)
	LatestAnalysis(ctx context.Context) (*models.ResumeAnalysis, error)
	LatestCompletedAnalysis(ctx context.Context) (*models.ResumeAnalysis, error)
	RecentAnalyses(ctx context.Context, n int) ([]models.ResumeAnalysis, error)
	AnalysisStats(ctx context.Context) (*models.AnalysisStats, error)
}

type AnalysisEndpoints struct {
	store          AnalysisStore
	analyzer       *Analyzer
	files          storage.FileStore
	notifier       Notifier
	recordFailures bool
	maxUpload      int64
}

// NewAnalysisEndpoints wires the upload pipeline. files and notifier may be nil.
func NewAnalysisEndpoints(store AnalysisStore, analyzer *Analyzer, files storage.FileStore, notifier Notifier, cfg AnalysisConfig, maxUpload int64) *AnalysisEndpoints {
	if maxUpload <= 0 {
		maxUpload = 10 << 20
	}
	return &AnalysisEndpoints{
		store:          store,
		analyzer:       analyzer,
		files:          files,
		notifier:       notifier,
		recordFailures: cfg.RecordFailures,
		maxUpload:      maxUpload,
	}
}

// RegisterRoutes mounts the public analysis endpoints.
func (e *AnalysisEndpoints) RegisterRoutes(r chi.Router) {
	r.Get("/sample/", e.SampleHandler)
	r.Post("/upload-resume/", e.UploadResumeHandler)
	r.Post("/upload-jd/", e.UploadJDHandler)
	r.Post("/match-resume-jd/", e.MatchResumeJDHandler)
	r.Get("/current-analysis/", e.CurrentAnalysisHandler)
	r.Get("/latest-analysis/", e.LatestAnalysisHandler)
	r.Get("/dashboard-stats/", e.DashboardStatsHandler)
	r.Get("/recent-analyses/", e.RecentAnalysesHandler)

	r.Route("/analyses", func(r chi.Router) {
		r.Get("/", e.ListAnalysesHandler)
		r.Post("/", e.CreateAnalysisHandler)
		r.Get("/{id}/", e.GetAnalysisHandler)
		r.Put("/{id}/", e.UpdateAnalysisHandler)
		r.Patch("/{id}/", e.UpdateAnalysisHandler)
		r.Delete("/{id}/", e.DeleteAnalysisHandler)
	})
}

func (e *AnalysisEndpoints) SampleHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Server running successfully!"})
}

// parseUpload bounds the body and parses the multipart form. It reports false
// after writing a response when the body is too large or not multipart.
func (e *AnalysisEndpoints) parseUpload(w http.ResponseWriter, r *http.Request, missingMessage string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, e.maxUpload)
	if err := r.ParseMultipartForm(e.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File exceeds the %d byte upload limit", tooLarge.Limit))
			return false
		}
		writeError(w, http.StatusBadRequest, missingMessage)
		return false
	}
	return true
}

func formFile(r *http.Request, field string) (multipart.File, *multipart.FileHeader, bool) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, nil, false
	}
	return file, header, true
}

// UploadResumeHandler extracts, scores and stores one PDF resume.
func (e *AnalysisEndpoints) UploadResumeHandler(w http.ResponseWriter, r *http.Request) {
	if !e.parseUpload(w, r, "Only PDF files allowed.") {
		return
	}
	file, header, ok := formFile(r, "file")
	if !ok {
		writeError(w, http.StatusBadRequest, "Only PDF files allowed.")
		return
	}
	defer file.Close()

	if format, err := extraction.ParseFormat(header.Filename); err != nil || format != extraction.FormatPDF {
		writeError(w, http.StatusBadRequest, "Only PDF files allowed.")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("Failed to read uploaded resume", "error", err, "file_name", header.Filename)
		writeError(w, http.StatusInternalServerError, "Something went wrong during analysis.")
		return
	}

	text, err := extraction.Extract(data, extraction.FormatPDF)
	if err != nil {
		slog.Warn("Resume text extraction failed", "error", err, "file_name", header.Filename)
		writeError(w, http.StatusBadRequest, "No readable text found in resume.")
		return
	}
	if strings.TrimSpace(text) == "" {
		writeError(w, http.StatusBadRequest, "No readable text found in resume.")
		return
	}

	ctx := r.Context()
	result, _, err := e.analyzer.AnalyzeResume(ctx, text)
	if err != nil {
		slog.Error("Resume scoring failed", "error", err, "file_name", header.Filename)
		if e.recordFailures {
			e.recordFailure(ctx, header.Filename)
		}
		writeError(w, http.StatusInternalServerError, scoringErrorMessage(err))
		return
	}

	previous, err := e.store.LatestCompletedAnalysis(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Something went wrong during analysis.")
		return
	}

	analysis, err := newCompletedAnalysis(header.Filename, result, previous)
	if err != nil {
		slog.Error("Failed to build analysis record", "error", err, "file_name", header.Filename)
		writeError(w, http.StatusInternalServerError, "Something went wrong during analysis.")
		return
	}

	resume, err := e.archiveResume(ctx, header, data, text, result)
	if err != nil {
		slog.Error("Failed to archive resume", "error", err, "file_name", header.Filename)
		writeError(w, http.StatusInternalServerError, "Something went wrong during analysis.")
		return
	}

	if err := e.store.CreateAnalysisWithResume(ctx, resume, analysis); err != nil {
		if resume.StorageKey != "" {
			slog.Warn("Archived resume has no analysis record", "storage_key", resume.StorageKey)
		}
		writeError(w, http.StatusInternalServerError, "Something went wrong during analysis.")
		return
	}

	e.publish(ctx, analysis)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Resume uploaded and analyzed successfully.",
		"analysis": analysis,
	})
}

func newCompletedAnalysis(fileName string, result *AnalysisResult, previous *models.ResumeAnalysis) (*models.ResumeAnalysis, error) {
	skills, err := json.Marshal(result.Skills)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal skills: %w", err)
	}

	trend, previousScore := trendAgainst(previous, *result.ATSScore)
	experience := result.Experience
	education := result.Education

	return &models.ResumeAnalysis{
		FileName:        fileName,
		UploadDate:      time.Now(),
		ATSScore:        result.ATSScore,
		ClarityScore:    result.ClarityScore,
		SkillsMatch:     datatypes.JSON(skills),
		JobMatches:      result.JobMatches,
		Experience:      &experience,
		Education:       &education,
		Strengths:       result.Strengths,
		Weaknesses:      result.Weaknesses,
		MissingKeywords: result.MissingKeywords,
		Status:          models.StatusCompleted,
		Trend:           trend,
		PreviousScore:   previousScore,
	}, nil
}

// trendAgainst compares a new ATS score with the latest completed record.
func trendAgainst(previous *models.ResumeAnalysis, score int) (string, int) {
	if previous == nil || previous.ATSScore == nil {
		return models.TrendNeutral, 0
	}
	prev := *previous.ATSScore
	switch {
	case score > prev:
		return models.TrendUp, prev
	case score < prev:
		return models.TrendDown, prev
	}
	return models.TrendNeutral, prev
}

// archiveResume saves the original file when a store is configured and builds
// the Resume row that CreateAnalysisWithResume persists.
func (e *AnalysisEndpoints) archiveResume(ctx context.Context, header *multipart.FileHeader, data []byte, text string, result *AnalysisResult) (*models.Resume, error) {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis result: %w", err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}

	resume := &models.Resume{
		FileName:       header.Filename,
		ContentType:    contentType,
		SizeBytes:      int64(len(data)),
		ExtractedText:  text,
		AnalysisResult: datatypes.JSON(resultJSON),
		UploadedAt:     time.Now(),
	}

	if e.files != nil {
		location, err := e.files.Save(ctx, storage.ResumeKey(header.Filename), bytes.NewReader(data), int64(len(data)), contentType)
		if err != nil {
			return nil, err
		}
		resume.StorageKey = location
	}
	return resume, nil
}

func (e *AnalysisEndpoints) recordFailure(ctx context.Context, fileName string) {
	analysis := &models.ResumeAnalysis{
		FileName:   fileName,
		UploadDate: time.Now(),
		Status:     models.StatusFailed,
		Trend:      models.TrendNeutral,
	}
	if err := e.store.CreateAnalysis(ctx, analysis); err != nil {
		return
	}
	e.publish(ctx, analysis)
}

func (e *AnalysisEndpoints) publish(ctx context.Context, analysis *models.ResumeAnalysis) {
	if e.notifier == nil {
		return
	}
	if err := e.notifier.Publish(context.WithoutCancel(ctx), NewAnalysisEvent(analysis)); err != nil {
		slog.Warn("Analysis event not delivered", "analysis_id", analysis.ID, "error", err)
	}
}

// scoringErrorMessage is the client-facing text for a failed scoring call.
func scoringErrorMessage(err error) string {
	var upstream *UpstreamError
	switch {
	case errors.Is(err, ErrNonJSONResponse):
		return "Invalid API response format"
	case errors.As(err, &upstream):
		if upstream.StatusCode != 0 {
			return upstream.Error()
		}
		return "Analysis failed: " + upstream.Message
	case errors.Is(err, ErrNoJSONFound), errors.Is(err, ErrMalformedJSON), errors.Is(err, ErrIncompleteResult):
		return "Invalid LLM output format"
	}
	return "Analysis failed: " + err.Error()
}

// UploadJDHandler returns the plain text of a pdf, docx or txt job description.
func (e *AnalysisEndpoints) UploadJDHandler(w http.ResponseWriter, r *http.Request) {
	if !e.parseUpload(w, r, "No file uploaded") {
		return
	}
	file, header, ok := formFile(r, "file")
	if !ok {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	text, _, err := extraction.ExtractFile(header.Filename, file)
	switch {
	case errors.Is(err, extraction.ErrUnsupportedFormat):
		writeError(w, http.StatusBadRequest, "Unsupported file format. Only PDF, DOCX, TXT supported.")
		return
	case errors.Is(err, extraction.ErrExtractionFailed):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.Error("Job description extraction failed", "error", err, "file_name", header.Filename)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"jd_text": text})
}

// MatchResumeJDHandler scores a resume against a job description. Nothing is stored.
func (e *AnalysisEndpoints) MatchResumeJDHandler(w http.ResponseWriter, r *http.Request) {
	if !e.parseUpload(w, r, "Both resume and JD files are required") {
		return
	}
	resumeFile, resumeHeader, resumeOK := formFile(r, "resume")
	jdFile, jdHeader, jdOK := formFile(r, "jd")
	if resumeOK {
		defer resumeFile.Close()
	}
	if jdOK {
		defer jdFile.Close()
	}
	if !resumeOK || !jdOK {
		writeError(w, http.StatusBadRequest, "Both resume and JD files are required")
		return
	}

	resumeText, ok := extractForMatch(w, resumeHeader.Filename, resumeFile, "resume")
	if !ok {
		return
	}
	jdText, ok := extractForMatch(w, jdHeader.Filename, jdFile, "JD")
	if !ok {
		return
	}
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jdText) == "" {
		writeError(w, http.StatusBadRequest, "Extracted text is empty from resume or JD.")
		return
	}

	result, raw, err := e.analyzer.MatchResume(r.Context(), resumeText, jdText)
	if err != nil {
		if errors.Is(err, ErrNoJSONFound) || errors.Is(err, ErrMalformedJSON) {
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error":        "LLM returned non-JSON output",
				"raw_response": raw,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func extractForMatch(w http.ResponseWriter, filename string, file io.Reader, label string) (string, bool) {
	text, _, err := extraction.ExtractFile(filename, file)
	switch {
	case errors.Is(err, extraction.ErrUnsupportedFormat):
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unsupported %s file format", label))
		return "", false
	case errors.Is(err, extraction.ErrExtractionFailed):
		writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return "", false
	}
	return text, true
}

// CurrentAnalysisSummary is the dashboard's view of the latest record.
type CurrentAnalysisSummary struct {
	FileName     string          `json:"fileName"`
	ATSScore     *int            `json:"atsScore"`
	ClarityScore *int            `json:"clarityScore"`
	Skills       json.RawMessage `json:"skills"`
	Strengths    []string        `json:"strengths"`
	Weaknesses   []string        `json:"weaknesses"`
	Education    string          `json:"education"`
	Experience   string          `json:"experience"`
	Trend        string          `json:"trend"`
}

func summarizeAnalysis(a *models.ResumeAnalysis) CurrentAnalysisSummary {
	summary := CurrentAnalysisSummary{
		FileName:     a.FileName,
		ATSScore:     a.ATSScore,
		ClarityScore: a.ClarityScore,
		Skills:       json.RawMessage("[]"),
		Strengths:    nonNil(a.Strengths),
		Weaknesses:   nonNil(a.Weaknesses),
		Education:    notProvided,
		Experience:   notProvided,
		Trend:        a.Trend,
	}
	if len(a.SkillsMatch) > 0 && string(a.SkillsMatch) != "null" {
		summary.Skills = json.RawMessage(a.SkillsMatch)
	}
	if a.Education != nil && *a.Education != "" {
		summary.Education = *a.Education
	}
	if a.Experience != nil && *a.Experience != "" {
		summary.Experience = *a.Experience
	}
	if summary.Trend == "" {
		summary.Trend = models.TrendNeutral
	}
	return summary
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func (e *AnalysisEndpoints) CurrentAnalysisHandler(w http.ResponseWriter, r *http.Request) {
	latest, err := e.store.LatestAnalysis(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load analysis")
		return
	}
	if latest == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, summarizeAnalysis(latest))
}

func (e *AnalysisEndpoints) LatestAnalysisHandler(w http.ResponseWriter, r *http.Request) {
	latest, err := e.store.LatestAnalysis(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load analysis")
		return
	}
	// A nil pointer encodes as {"analysis": null}.
	writeJSON(w, http.StatusOK, map[string]interface{}{"analysis": latest})
}

type StatCard struct {
	Name   string      `json:"name"`
	Value  interface{} `json:"value"`
	Change string      `json:"change"`
	Color  string      `json:"color"`
	Icon   string      `json:"icon"`
}

func dashboardCards(stats *models.AnalysisStats) []StatCard {
	return []StatCard{
		{Name: "Total Resumes Analyzed", Value: stats.Total, Change: "12%", Color: "bg-blue-500", Icon: "DocumentTextIcon"},
		{Name: "Average ATS Score", Value: fmt.Sprintf("%.0f%%", stats.AverageATS), Change: "6%", Color: "bg-green-500", Icon: "ChartBarIcon"},
		{Name: "Job Matches Found", Value: stats.Total * 2, Change: "18%", Color: "bg-purple-500", Icon: "BriefcaseIcon"},
		{Name: "Skills Improved", Value: stats.Total * 3, Change: "9%", Color: "bg-orange-500", Icon: "AcademicCapIcon"},
	}
}

func (e *AnalysisEndpoints) DashboardStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := e.store.AnalysisStats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load dashboard stats")
		return
	}
	writeJSON(w, http.StatusOK, dashboardCards(stats))
}

type RecentAnalysis struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Status string `json:"status"`
	Date   string `json:"date"`
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func (e *AnalysisEndpoints) RecentAnalysesHandler(w http.ResponseWriter, r *http.Request) {
	analyses, err := e.store.RecentAnalyses(r.Context(), recentAnalysesLimit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load recent analyses")
		return
	}

	recent := make([]RecentAnalysis, 0, len(analyses))
	for _, a := range analyses {
		score := 0
		if a.ATSScore != nil {
			score = *a.ATSScore
		}
		recent = append(recent, RecentAnalysis{
			ID:     a.ID,
			Name:   a.FileName,
			Score:  score,
			Status: titleCase(a.Status),
			Date:   a.UploadDate.Format("Jan 02, 2006 03:04 PM"),
		})
	}
	writeJSON(w, http.StatusOK, recent)
}

func (e *AnalysisEndpoints) ListAnalysesHandler(w http.ResponseWriter, r *http.Request) {
	filter := repository.AnalysisFilter{
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
		Status: r.URL.Query().Get("status"),
	}
	if filter.Status != "" && !models.ValidStatus(filter.Status) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid status %q", filter.Status))
		return
	}

	analyses, err := e.store.ListAnalyses(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list analyses")
		return
	}
	if analyses == nil {
		analyses = []models.ResumeAnalysis{}
	}
	writeJSON(w, http.StatusOK, analyses)
}

// AnalysisInput carries the fields a client may set. Scores and the other
// model-derived fields are never writable.
type AnalysisInput struct {
	FileName      *string `json:"file_name"`
	Status        *string `json:"status"`
	Trend         *string `json:"trend"`
	PreviousScore *int    `json:"previous_score"`
}

// validate checks in against the record it would change, nil on create.
// Only a record carrying both scores may be completed, and a scored record
// stays completed.
func (in AnalysisInput) validate(current *models.ResumeAnalysis) error {
	if in.Status != nil {
		if !models.ValidStatus(*in.Status) {
			return fmt.Errorf("invalid status %q", *in.Status)
		}
		scored := current != nil && current.ATSScore != nil && current.ClarityScore != nil
		switch {
		case *in.Status == models.StatusCompleted && !scored:
			return errors.New("status completed requires a scored analysis")
		case *in.Status != models.StatusCompleted && scored:
			return fmt.Errorf("a scored analysis cannot be marked %s", *in.Status)
		}
	}
	if in.Trend != nil && !models.ValidTrend(*in.Trend) {
		return fmt.Errorf("invalid trend %q", *in.Trend)
	}
	if in.PreviousScore != nil && (*in.PreviousScore < 0 || *in.PreviousScore > 100) {
		return fmt.Errorf("previous_score must be between 0 and 100")
	}
	return nil
}

func (in AnalysisInput) apply(a *models.ResumeAnalysis) {
	if in.Status != nil {
		a.Status = *in.Status
	}
	if in.Trend != nil {
		a.Trend = *in.Trend
	}
	if in.PreviousScore != nil {
		a.PreviousScore = *in.PreviousScore
	}
}

func (e *AnalysisEndpoints) CreateAnalysisHandler(w http.ResponseWriter, r *http.Request) {
	var in AnalysisInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.FileName == nil || strings.TrimSpace(*in.FileName) == "" {
		writeError(w, http.StatusBadRequest, "file_name is required")
		return
	}
	if err := in.validate(nil); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	analysis := &models.ResumeAnalysis{
		FileName:   strings.TrimSpace(*in.FileName),
		UploadDate: time.Now(),
		Status:     models.StatusProcessing,
		Trend:      models.TrendNeutral,
	}
	in.apply(analysis)

	if err := e.store.CreateAnalysis(r.Context(), analysis); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create analysis")
		return
	}
	writeJSON(w, http.StatusCreated, analysis)
}

// loadAnalysis writes a 404 and returns nil when id does not name a record.
func (e *AnalysisEndpoints) loadAnalysis(w http.ResponseWriter, r *http.Request) *models.ResumeAnalysis {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusNotFound, "Analysis not found")
		return nil
	}

	analysis, err := e.store.GetAnalysis(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load analysis")
		return nil
	}
	if analysis == nil {
		writeError(w, http.StatusNotFound, "Analysis not found")
		return nil
	}
	return analysis
}

func (e *AnalysisEndpoints) GetAnalysisHandler(w http.ResponseWriter, r *http.Request) {
	analysis := e.loadAnalysis(w, r)
	if analysis == nil {
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (e *AnalysisEndpoints) UpdateAnalysisHandler(w http.ResponseWriter, r *http.Request) {
	analysis := e.loadAnalysis(w, r)
	if analysis == nil {
		return
	}

	var in AnalysisInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	// file_name is fixed once the record exists.
	in.FileName = nil
	if err := in.validate(analysis); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	in.apply(analysis)

	if err := e.store.UpdateAnalysis(r.Context(), analysis); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update analysis")
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (e *AnalysisEndpoints) DeleteAnalysisHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusNotFound, "Analysis not found")
		return
	}

	deleted, err := e.store.DeleteAnalysis(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete analysis")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Analysis not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
