package repository

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/resumeiq/backend/models"
	"gorm.io/gorm"
)

// AnalysisFilter narrows ListAnalyses. Zero values mean no restriction.
type AnalysisFilter struct {
	Search string // case-insensitive substring of file_name
	Status string
	Limit  int
}

func (r *GORMRepository) CreateAnalysis(ctx context.Context, analysis *models.ResumeAnalysis) error {
	if err := r.db.WithContext(ctx).Create(analysis).Error; err != nil {
		slog.Error("Failed to create analysis", "error", err, "file_name", analysis.FileName)
		return err
	}
	slog.Info("Analysis created", "analysis_id", analysis.ID, "status", analysis.Status)
	return nil
}

// CreateAnalysisWithResume stores the archived resume and its analysis in one transaction.
func (r *GORMRepository) CreateAnalysisWithResume(ctx context.Context, resume *models.Resume, analysis *models.ResumeAnalysis) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(resume).Error; err != nil {
			return err
		}
		analysis.ResumeID = &resume.ID
		return tx.Create(analysis).Error
	})
	if err != nil {
		slog.Error("Failed to create analysis with resume", "error", err, "file_name", analysis.FileName)
		return err
	}
	slog.Info("Analysis created", "analysis_id", analysis.ID, "resume_id", resume.ID, "status", analysis.Status)
	return nil
}

func (r *GORMRepository) GetAnalysis(ctx context.Context, id string) (*models.ResumeAnalysis, error) {
	var analysis models.ResumeAnalysis
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&analysis).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Failed to get analysis", "error", err, "analysis_id", id)
		return nil, err
	}
	return &analysis, nil
}

func (r *GORMRepository) UpdateAnalysis(ctx context.Context, analysis *models.ResumeAnalysis) error {
	if err := r.db.WithContext(ctx).Save(analysis).Error; err != nil {
		slog.Error("Failed to update analysis", "error", err, "analysis_id", analysis.ID)
		return err
	}
	slog.Info("Analysis updated", "analysis_id", analysis.ID, "status", analysis.Status)
	return nil
}

// DeleteAnalysis reports false when no record had the given id.
func (r *GORMRepository) DeleteAnalysis(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ResumeAnalysis{})
	if result.Error != nil {
		slog.Error("Failed to delete analysis", "error", result.Error, "analysis_id", id)
		return false, result.Error
	}
	slog.Info("Analysis deleted", "analysis_id", id)
	return result.RowsAffected > 0, nil
}

// ListAnalyses returns records newest first.
func (r *GORMRepository) ListAnalyses(ctx context.Context, filter AnalysisFilter) ([]models.ResumeAnalysis, error) {
	var analyses []models.ResumeAnalysis
	query := r.db.WithContext(ctx).Order("upload_date DESC")

	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("file_name ILIKE ?", "%"+escapeLike(search)+"%")
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Find(&analyses).Error; err != nil {
		slog.Error("Failed to list analyses", "error", err, "search", filter.Search, "status", filter.Status)
		return nil, err
	}
	return analyses, nil
}

func (r *GORMRepository) LatestAnalysis(ctx context.Context) (*models.ResumeAnalysis, error) {
	return r.latest(ctx, r.db.WithContext(ctx))
}

// LatestCompletedAnalysis is the reference point for a new record's trend.
func (r *GORMRepository) LatestCompletedAnalysis(ctx context.Context) (*models.ResumeAnalysis, error) {
	return r.latest(ctx, r.db.WithContext(ctx).Where("status = ?", models.StatusCompleted))
}

func (r *GORMRepository) latest(ctx context.Context, query *gorm.DB) (*models.ResumeAnalysis, error) {
	var analysis models.ResumeAnalysis
	if err := query.Order("upload_date DESC").First(&analysis).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Failed to get latest analysis", "error", err)
		return nil, err
	}
	return &analysis, nil
}

func (r *GORMRepository) RecentAnalyses(ctx context.Context, n int) ([]models.ResumeAnalysis, error) {
	return r.ListAnalyses(ctx, AnalysisFilter{Limit: n})
}

// AnalysisStats reports an AverageATS of 0 when nothing has been scored.
func (r *GORMRepository) AnalysisStats(ctx context.Context) (*models.AnalysisStats, error) {
	var row struct {
		Total      int64    `gorm:"column:total"`
		Completed  int64    `gorm:"column:completed"`
		AverageATS *float64 `gorm:"column:average_ats"`
	}
	err := r.db.WithContext(ctx).
		Model(&models.ResumeAnalysis{}).
		Select("COUNT(*) AS total, COUNT(*) FILTER (WHERE status = ?) AS completed, AVG(ats_score) AS average_ats", models.StatusCompleted).
		Scan(&row).Error
	if err != nil {
		slog.Error("Failed to aggregate analysis stats", "error", err)
		return nil, err
	}

	stats := &models.AnalysisStats{Total: row.Total, Completed: row.Completed}
	if row.AverageATS != nil {
		stats.AverageATS = *row.AverageATS
	}
	return stats, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
