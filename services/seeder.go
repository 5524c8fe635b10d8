package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resumeiq/backend/models"
	"golang.org/x/crypto/bcrypt"
)

// SeedStore is the persistence DatabaseSeeder writes through.
type SeedStore interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	GetSkillByName(ctx context.Context, name string) (*models.Skill, error)
	CreateSkill(ctx context.Context, skill *models.Skill) error
	GetUserSkills(ctx context.Context, userID string) ([]models.UserSkill, error)
	UpsertUserSkill(ctx context.Context, level *models.UserSkill) error
}

// DatabaseSeeder handles database seeding operations
type DatabaseSeeder struct {
	repo SeedStore
}

// NewDatabaseSeeder creates a new database seeder
func NewDatabaseSeeder(repo SeedStore) *DatabaseSeeder {
	return &DatabaseSeeder{repo: repo}
}

type seedSkill struct {
	skill         models.Skill
	currentLevel  int
	requiredLevel int
}

// defaultSkills is the catalogue the skill-gap page starts from, with the
// demo user's levels.
var defaultSkills = []seedSkill{
	{
		skill: models.Skill{
			Name: "TypeScript", Importance: models.ImportanceHigh, DemandScore: 92,
			Courses: []models.Course{
				{Title: "TypeScript Fundamentals", Provider: "Udemy", Duration: "12 hours", Rating: 4.8, Students: "45,000", Price: "$89", Level: "Beginner"},
				{Title: "Advanced TypeScript", Provider: "Pluralsight", Duration: "8 hours", Rating: 4.6, Students: "23,000", Price: "$29/month", Level: "Advanced"},
			},
		},
		currentLevel: 30, requiredLevel: 85,
	},
	{
		skill: models.Skill{
			Name: "AWS Cloud Services", Importance: models.ImportanceHigh, DemandScore: 88,
			Courses: []models.Course{
				{Title: "AWS Certified Solutions Architect", Provider: "AWS Training", Duration: "40 hours", Rating: 4.7, Students: "125,000", Price: "$199", Level: "Intermediate"},
				{Title: "AWS for Beginners", Provider: "Coursera", Duration: "20 hours", Rating: 4.5, Students: "67,000", Price: "$49/month", Level: "Beginner"},
			},
		},
		currentLevel: 20, requiredLevel: 75,
	},
	{
		skill: models.Skill{
			Name: "Docker & Kubernetes", Importance: models.ImportanceMedium, DemandScore: 85,
			Courses: []models.Course{
				{Title: "Docker & Kubernetes Complete Guide", Provider: "Udemy", Duration: "22 hours", Rating: 4.6, Students: "89,000", Price: "$119", Level: "Intermediate"},
			},
		},
		currentLevel: 40, requiredLevel: 80,
	},
	{
		skill: models.Skill{
			Name: "GraphQL", Importance: models.ImportanceMedium, DemandScore: 78,
			Courses: []models.Course{
				{Title: "GraphQL with React", Provider: "Frontend Masters", Duration: "6 hours", Rating: 4.4, Students: "12,000", Price: "$39/month", Level: "Intermediate"},
			},
		},
		currentLevel: 15, requiredLevel: 70,
	},
}

const demoUsername = "demo"

// SeedDatabase seeds the demo user and skill catalogue (idempotent)
func (s *DatabaseSeeder) SeedDatabase(ctx context.Context) error {
	demo, err := s.seedUser(ctx, demoUsername, "demo@example.com", "password")
	if err != nil {
		return err
	}

	existing, err := s.repo.GetUserSkills(ctx, demo.ID)
	if err != nil {
		return fmt.Errorf("failed to get demo user skills: %w", err)
	}
	hasLevel := make(map[uint]bool, len(existing))
	for _, level := range existing {
		hasLevel[level.SkillID] = true
	}

	for _, seed := range defaultSkills {
		skill, err := s.seedSkill(ctx, seed.skill)
		if err != nil {
			slog.Error("Failed to seed skill", "name", seed.skill.Name, "error", err)
			continue
		}
		// Levels the user has since edited are left alone.
		if hasLevel[skill.ID] {
			continue
		}
		level := &models.UserSkill{
			UserID:        demo.ID,
			SkillID:       skill.ID,
			CurrentLevel:  seed.currentLevel,
			RequiredLevel: seed.requiredLevel,
		}
		if err := s.repo.UpsertUserSkill(ctx, level); err != nil {
			slog.Error("Failed to seed user skill", "name", skill.Name, "error", err)
		}
	}

	slog.Info("Database seeding completed successfully")
	return nil
}

// seedUser returns the named user, creating it first if needed.
func (s *DatabaseSeeder) seedUser(ctx context.Context, username, email, password string) (*models.User, error) {
	existingUser, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error checking user %s: %w", username, err)
	}
	if existingUser != nil {
		slog.Info("User already exists, skipping", "username", username)
		return existingUser, nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		Role:     "user",
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", username, err)
	}

	slog.Info("Created user", "username", username)
	return user, nil
}

// seedSkill returns the named skill, creating it with its courses if needed.
func (s *DatabaseSeeder) seedSkill(ctx context.Context, skill models.Skill) (*models.Skill, error) {
	existing, err := s.repo.GetSkillByName(ctx, skill.Name)
	if err != nil {
		return nil, fmt.Errorf("error checking skill %s: %w", skill.Name, err)
	}
	if existing != nil {
		return existing, nil
	}

	// Courses are copied so the package-level catalogue never picks up ids.
	skill.Courses = append([]models.Course(nil), skill.Courses...)
	if err := s.repo.CreateSkill(ctx, &skill); err != nil {
		return nil, fmt.Errorf("failed to create skill %s: %w", skill.Name, err)
	}

	slog.Info("Created skill", "name", skill.Name, "courses", len(skill.Courses))
	return &skill, nil
}
