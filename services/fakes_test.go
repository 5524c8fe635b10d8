package services

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/resumeiq/backend/models"
	"github.com/resumeiq/backend/repository"
)

// fakeLLM replies with a fixed string or error and counts calls.
type fakeLLM struct {
	mu      sync.Mutex
	reply   string
	err     error
	calls   int
	prompts []string
	block   bool
}

func (f *fakeLLM) Provider() string { return "fake" }

func (f *fakeLLM) Complete(ctx context.Context, prompt, model string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.reply, f.err
}

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// memStore is an in-memory stand-in for GORMRepository.
type memStore struct {
	mu        sync.Mutex
	analyses  []models.ResumeAnalysis
	resumes   []models.Resume
	users     []models.User
	tokens    []models.RefreshToken
	skills    []models.Skill
	levels    []models.UserSkill
	createErr error
}

func newMemStore() *memStore {
	return &memStore{}
}

func (m *memStore) CreateAnalysis(ctx context.Context, analysis *models.ResumeAnalysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if analysis.ID == "" {
		analysis.ID = uuid.NewString()
	}
	m.analyses = append(m.analyses, *analysis)
	return nil
}

func (m *memStore) CreateAnalysisWithResume(ctx context.Context, resume *models.Resume, analysis *models.ResumeAnalysis) error {
	m.mu.Lock()
	if m.createErr != nil {
		m.mu.Unlock()
		return m.createErr
	}
	resume.ID = uuid.NewString()
	m.resumes = append(m.resumes, *resume)
	m.mu.Unlock()

	analysis.ResumeID = &resume.ID
	return m.CreateAnalysis(ctx, analysis)
}

func (m *memStore) GetAnalysis(ctx context.Context, id string) (*models.ResumeAnalysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.analyses {
		if a.ID == id {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memStore) UpdateAnalysis(ctx context.Context, analysis *models.ResumeAnalysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.analyses {
		if m.analyses[i].ID == analysis.ID {
			m.analyses[i] = *analysis
			return nil
		}
	}
	return fmt.Errorf("analysis %s not found", analysis.ID)
}

func (m *memStore) DeleteAnalysis(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.analyses {
		if m.analyses[i].ID == id {
			m.analyses = append(m.analyses[:i], m.analyses[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// newestFirst orders by upload date, later inserts first on ties.
func (m *memStore) newestFirst() []models.ResumeAnalysis {
	out := make([]models.ResumeAnalysis, 0, len(m.analyses))
	for i := len(m.analyses) - 1; i >= 0; i-- {
		out = append(out, m.analyses[i])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UploadDate.After(out[j].UploadDate) })
	return out
}

func (m *memStore) ListAnalyses(ctx context.Context, filter repository.AnalysisFilter) ([]models.ResumeAnalysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.ResumeAnalysis{}
	for _, a := range m.newestFirst() {
		if filter.Search != "" && !strings.Contains(strings.ToLower(a.FileName), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		out = append(out, a)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (m *memStore) LatestAnalysis(ctx context.Context) (*models.ResumeAnalysis, error) {
	list, _ := m.ListAnalyses(ctx, repository.AnalysisFilter{Limit: 1})
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

func (m *memStore) LatestCompletedAnalysis(ctx context.Context) (*models.ResumeAnalysis, error) {
	list, _ := m.ListAnalyses(ctx, repository.AnalysisFilter{Status: models.StatusCompleted, Limit: 1})
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

func (m *memStore) RecentAnalyses(ctx context.Context, n int) ([]models.ResumeAnalysis, error) {
	return m.ListAnalyses(ctx, repository.AnalysisFilter{Limit: n})
}

func (m *memStore) AnalysisStats(ctx context.Context) (*models.AnalysisStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &models.AnalysisStats{Total: int64(len(m.analyses))}
	sum, scored := 0, 0
	for _, a := range m.analyses {
		if a.Status == models.StatusCompleted {
			stats.Completed++
		}
		if a.ATSScore != nil {
			sum += *a.ATSScore
			scored++
		}
	}
	if scored > 0 {
		stats.AverageATS = float64(sum) / float64(scored)
	}
	return stats, nil
}

func (m *memStore) analysisCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.analyses)
}

func (m *memStore) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username {
			return repository.ErrUsernameTaken
		}
	}
	user.ID = uuid.NewString()
	m.users = append(m.users, *user)
	return nil
}

func (m *memStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memStore) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	token.ID = uuid.NewString()
	m.tokens = append(m.tokens, *token)
	return nil
}

func (m *memStore) GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tokens {
		if t.Token == token && t.ExpiresAt.After(time.Now()) {
			found := t
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memStore) DeleteAllUserTokens(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.tokens[:0]
	for _, t := range m.tokens {
		if t.UserID != userID {
			kept = append(kept, t)
		}
	}
	m.tokens = kept
	return nil
}

func (m *memStore) CreateSkill(ctx context.Context, skill *models.Skill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	skill.ID = uint(len(m.skills) + 1)
	for i := range skill.Courses {
		skill.Courses[i].ID = uint(i + 1)
		skill.Courses[i].SkillID = skill.ID
	}
	m.skills = append(m.skills, *skill)
	return nil
}

func (m *memStore) GetSkill(ctx context.Context, id uint) (*models.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.skills {
		if s.ID == id {
			found := s
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memStore) GetSkillByName(ctx context.Context, name string) (*models.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.skills {
		if s.Name == name {
			found := s
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memStore) ListSkillsWithCourses(ctx context.Context) ([]models.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Skill(nil), m.skills...), nil
}

func (m *memStore) GetUserSkills(ctx context.Context, userID string) ([]models.UserSkill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.UserSkill
	for _, l := range m.levels {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memStore) UpsertUserSkill(ctx context.Context, level *models.UserSkill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.levels {
		if m.levels[i].UserID == level.UserID && m.levels[i].SkillID == level.SkillID {
			m.levels[i].CurrentLevel = level.CurrentLevel
			m.levels[i].RequiredLevel = level.RequiredLevel
			return nil
		}
	}
	level.ID = uint(len(m.levels) + 1)
	m.levels = append(m.levels, *level)
	return nil
}

// recordingNotifier keeps every published event.
type recordingNotifier struct {
	mu     sync.Mutex
	events []AnalysisEvent
	err    error
}

func (n *recordingNotifier) Publish(ctx context.Context, event AnalysisEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return n.err
}

type upload struct {
	field    string
	filename string
	content  []byte
}

// multipartRequest builds a POST with one file part per upload.
func multipartRequest(t *testing.T, target string, uploads ...upload) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, u := range uploads {
		part, err := mw.CreateFormFile(u.field, u.filename)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write(u.content); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// onePagePDF writes an uncompressed single-page PDF showing text.
func onePagePDF(t *testing.T, text string) []byte {
	t.Helper()

	var buf bytes.Buffer
	var offsets []int
	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	stream := fmt.Sprintf("BT /F1 24 Tf 72 720 Td (%s) Tj ET", text)
	buf.WriteString("%PDF-1.4\n")
	writeObj("<< /Type /Catalog /Pages 2 0 R >>")
	writeObj("<< /Type /Pages /Kids [4 0 R] /Count 1 >>")
	writeObj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")
	writeObj("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 5 0 R /Resources << /Font << /F1 3 0 R >> >> >>")
	writeObj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

func intPtr(n int) *int { return &n }
