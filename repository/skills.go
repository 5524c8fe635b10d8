package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/resumeiq/backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *GORMRepository) CreateSkill(ctx context.Context, skill *models.Skill) error {
	if err := r.db.WithContext(ctx).Create(skill).Error; err != nil {
		slog.Error("Failed to create skill", "error", err, "name", skill.Name)
		return err
	}
	slog.Info("Skill created", "skill_id", skill.ID, "name", skill.Name, "courses", len(skill.Courses))
	return nil
}

func (r *GORMRepository) GetSkill(ctx context.Context, id uint) (*models.Skill, error) {
	var skill models.Skill
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&skill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Failed to get skill", "error", err, "skill_id", id)
		return nil, err
	}
	return &skill, nil
}

func (r *GORMRepository) GetSkillByName(ctx context.Context, name string) (*models.Skill, error) {
	var skill models.Skill
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&skill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Failed to get skill by name", "error", err, "name", name)
		return nil, err
	}
	return &skill, nil
}

// ListSkillsWithCourses loads every skill with its courses in one round trip per table.
func (r *GORMRepository) ListSkillsWithCourses(ctx context.Context) ([]models.Skill, error) {
	var skills []models.Skill
	err := r.db.WithContext(ctx).
		Preload("Courses", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Order("id").
		Find(&skills).Error
	if err != nil {
		slog.Error("Failed to list skills", "error", err)
		return nil, err
	}
	return skills, nil
}

func (r *GORMRepository) GetUserSkills(ctx context.Context, userID string) ([]models.UserSkill, error) {
	var levels []models.UserSkill
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&levels).Error; err != nil {
		slog.Error("Failed to get user skills", "error", err, "user_id", userID)
		return nil, err
	}
	return levels, nil
}

// UpsertUserSkill writes the levels for (user, skill), replacing any previous row.
func (r *GORMRepository) UpsertUserSkill(ctx context.Context, level *models.UserSkill) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "skill_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"current_level", "required_level"}),
	}).Create(level).Error
	if err != nil {
		slog.Error("Failed to upsert user skill", "error", err, "user_id", level.UserID, "skill_id", level.SkillID)
		return err
	}
	return nil
}
