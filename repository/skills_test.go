package repository_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/resumeiq/backend/models"
)

var _ = Describe("Skill store", func() {
	var ctx context.Context

	BeforeEach(func() {
		requireDB()
		ctx = context.Background()
	})

	It("preloads courses and upserts user levels", func() {
		skill := &models.Skill{
			Name:        "Docker",
			Importance:  models.ImportanceMedium,
			DemandScore: 82,
			Courses: []models.Course{
				{Title: "Docker Mastery", Provider: "Udemy", Duration: "19 hours", Rating: 4.7, Students: "150,000", Price: "$89.99", Level: "All Levels"},
			},
		}
		Expect(repo.CreateSkill(ctx, skill)).To(Succeed())

		skills, err := repo.ListSkillsWithCourses(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(skills).To(HaveLen(1))
		Expect(skills[0].Courses).To(HaveLen(1))
		Expect(skills[0].Courses[0].Title).To(Equal("Docker Mastery"))

		user := &models.User{Username: "learner", Password: "x"}
		Expect(repo.CreateUser(ctx, user)).To(Succeed())

		Expect(repo.UpsertUserSkill(ctx, &models.UserSkill{UserID: user.ID, SkillID: skill.ID, CurrentLevel: 20, RequiredLevel: 70})).To(Succeed())
		Expect(repo.UpsertUserSkill(ctx, &models.UserSkill{UserID: user.ID, SkillID: skill.ID, CurrentLevel: 45, RequiredLevel: 80})).To(Succeed())

		levels, err := repo.GetUserSkills(ctx, user.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(levels).To(HaveLen(1))
		Expect(levels[0].CurrentLevel).To(Equal(45))
		Expect(levels[0].RequiredLevel).To(Equal(80))
	})
})
