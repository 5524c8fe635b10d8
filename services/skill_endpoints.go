package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/resumeiq/backend/models"
)

// SkillStore is the persistence the skill-gap endpoints need.
type SkillStore interface {
	ListSkillsWithCourses(ctx context.Context) ([]models.Skill, error)
	GetSkill(ctx context.Context, id uint) (*models.Skill, error)
	GetUserSkills(ctx context.Context, userID string) ([]models.UserSkill, error)
	UpsertUserSkill(ctx context.Context, level *models.UserSkill) error
}

type SkillEndpoints struct {
	store SkillStore
}

func NewSkillEndpoints(store SkillStore) *SkillEndpoints {
	return &SkillEndpoints{store: store}
}

// RegisterRoutes mounts the skill endpoints. They expect an authenticated user.
func (e *SkillEndpoints) RegisterRoutes(r chi.Router) {
	r.Get("/skill-gap-analysis/", e.SkillGapHandler)
	r.Put("/user-skills/{skillID}/", e.UpdateUserSkillHandler)
}

type SkillGap struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Importance    string          `json:"importance"`
	DemandScore   int             `json:"demandScore"`
	CurrentLevel  int             `json:"currentLevel"`
	RequiredLevel int             `json:"requiredLevel"`
	Courses       []models.Course `json:"courses"`
}

func (e *SkillEndpoints) SkillGapHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	skills, err := e.store.ListSkillsWithCourses(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load skills")
		return
	}
	levels, err := e.store.GetUserSkills(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load skill levels")
		return
	}

	bySkill := make(map[uint]models.UserSkill, len(levels))
	for _, level := range levels {
		bySkill[level.SkillID] = level
	}

	gaps := make([]SkillGap, 0, len(skills))
	for _, skill := range skills {
		gap := SkillGap{
			ID:            skill.ID,
			Name:          skill.Name,
			Importance:    skill.Importance,
			DemandScore:   skill.DemandScore,
			CurrentLevel:  models.DefaultCurrentLevel,
			RequiredLevel: models.DefaultRequiredLevel,
			Courses:       skill.Courses,
		}
		if level, ok := bySkill[skill.ID]; ok {
			gap.CurrentLevel = level.CurrentLevel
			gap.RequiredLevel = level.RequiredLevel
		}
		if gap.Courses == nil {
			gap.Courses = []models.Course{}
		}
		gaps = append(gaps, gap)
	}

	writeJSON(w, http.StatusOK, gaps)
}

type UserSkillRequest struct {
	CurrentLevel  *int `json:"current_level"`
	RequiredLevel *int `json:"required_level"`
}

func checkLevel(name string, v *int) error {
	if v != nil && (*v < 0 || *v > 100) {
		return fmt.Errorf("%s must be between 0 and 100", name)
	}
	return nil
}

// UpdateUserSkillHandler sets the caller's levels for one skill. Omitted
// levels keep their stored value, or the default for a new row.
func (e *SkillEndpoints) UpdateUserSkillHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	skillID, err := strconv.ParseUint(chi.URLParam(r, "skillID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Skill not found")
		return
	}

	var req UserSkillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	for name, v := range map[string]*int{"current_level": req.CurrentLevel, "required_level": req.RequiredLevel} {
		if err := checkLevel(name, v); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	skill, err := e.store.GetSkill(r.Context(), uint(skillID))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load skill")
		return
	}
	if skill == nil {
		writeError(w, http.StatusNotFound, "Skill not found")
		return
	}

	level := &models.UserSkill{
		UserID:        user.ID,
		SkillID:       skill.ID,
		CurrentLevel:  models.DefaultCurrentLevel,
		RequiredLevel: models.DefaultRequiredLevel,
	}
	levels, err := e.store.GetUserSkills(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load skill levels")
		return
	}
	for _, existing := range levels {
		if existing.SkillID == skill.ID {
			level.CurrentLevel = existing.CurrentLevel
			level.RequiredLevel = existing.RequiredLevel
		}
	}
	if req.CurrentLevel != nil {
		level.CurrentLevel = *req.CurrentLevel
	}
	if req.RequiredLevel != nil {
		level.RequiredLevel = *req.RequiredLevel
	}

	if err := e.store.UpsertUserSkill(r.Context(), level); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save skill level")
		return
	}

	writeJSON(w, http.StatusOK, SkillGap{
		ID:            skill.ID,
		Name:          skill.Name,
		Importance:    skill.Importance,
		DemandScore:   skill.DemandScore,
		CurrentLevel:  level.CurrentLevel,
		RequiredLevel: level.RequiredLevel,
		Courses:       []models.Course{},
	})
}
