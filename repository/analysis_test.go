package repository_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/resumeiq/backend/models"
	"github.com/resumeiq/backend/repository"
	"gorm.io/datatypes"
)

func completedAnalysis(name string, ats int, at time.Time) *models.ResumeAnalysis {
	clarity := 60
	experience := "2 years"
	education := "BSc"
	return &models.ResumeAnalysis{
		FileName:     name,
		UploadDate:   at,
		ATSScore:     &ats,
		ClarityScore: &clarity,
		SkillsMatch:  datatypes.JSON(`{"technical":["Go"],"soft":[],"tools":[]}`),
		Experience:   &experience,
		Education:    &education,
		Strengths:    []string{"clear formatting"},
		Weaknesses:   []string{"no metrics"},
		Status:       models.StatusCompleted,
		Trend:        models.TrendNeutral,
	}
}

var _ = Describe("Analysis store", func() {
	var ctx context.Context

	BeforeEach(func() {
		requireDB()
		ctx = context.Background()
	})

	It("reports a zero average when nothing is stored", func() {
		stats, err := repo.AnalysisStats(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.Total).To(BeZero())
		Expect(stats.AverageATS).To(BeZero())
	})

	It("averages ATS scores across records", func() {
		base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
		Expect(repo.CreateAnalysis(ctx, completedAnalysis("a.pdf", 60, base))).To(Succeed())
		Expect(repo.CreateAnalysis(ctx, completedAnalysis("b.pdf", 80, base.Add(time.Hour)))).To(Succeed())

		stats, err := repo.AnalysisStats(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.Total).To(Equal(int64(2)))
		Expect(stats.Completed).To(Equal(int64(2)))
		Expect(stats.AverageATS).To(BeNumerically("~", 70, 0.001))
	})

	It("lists newest first with search and status filters", func() {
		base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
		Expect(repo.CreateAnalysis(ctx, completedAnalysis("alice_cv.pdf", 55, base))).To(Succeed())
		Expect(repo.CreateAnalysis(ctx, completedAnalysis("bob_resume.pdf", 70, base.Add(time.Hour)))).To(Succeed())
		Expect(repo.CreateAnalysis(ctx, &models.ResumeAnalysis{
			FileName:   "Alice_final.pdf",
			UploadDate: base.Add(2 * time.Hour),
			Status:     models.StatusFailed,
			Trend:      models.TrendNeutral,
		})).To(Succeed())

		all, err := repo.ListAnalyses(ctx, repository.AnalysisFilter{})
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(HaveLen(3))
		Expect(all[0].FileName).To(Equal("Alice_final.pdf"))

		byName, err := repo.ListAnalyses(ctx, repository.AnalysisFilter{Search: "alice"})
		Expect(err).NotTo(HaveOccurred())
		Expect(byName).To(HaveLen(2))

		failed, err := repo.ListAnalyses(ctx, repository.AnalysisFilter{Search: "alice", Status: models.StatusFailed})
		Expect(err).NotTo(HaveOccurred())
		Expect(failed).To(HaveLen(1))
		Expect(failed[0].ATSScore).To(BeNil())

		recent, err := repo.RecentAnalyses(ctx, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(recent).To(HaveLen(2))
	})

	It("picks the latest completed record for trend comparison", func() {
		base := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
		Expect(repo.CreateAnalysis(ctx, completedAnalysis("one.pdf", 50, base))).To(Succeed())
		Expect(repo.CreateAnalysis(ctx, &models.ResumeAnalysis{
			FileName:   "two.pdf",
			UploadDate: base.Add(time.Hour),
			Status:     models.StatusFailed,
		})).To(Succeed())

		latest, err := repo.LatestAnalysis(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(latest.FileName).To(Equal("two.pdf"))

		completed, err := repo.LatestCompletedAnalysis(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(completed.FileName).To(Equal("one.pdf"))
	})

	It("stores the archived resume and its analysis together", func() {
		resume := &models.Resume{
			FileName:       "cv.pdf",
			StorageKey:     "resumes/x/cv.pdf",
			ContentType:    "application/pdf",
			ExtractedText:  "Hello World",
			AnalysisResult: datatypes.JSON(`{"ats_score":65}`),
			UploadedAt:     time.Now(),
		}
		analysis := completedAnalysis("cv.pdf", 65, time.Now())
		Expect(repo.CreateAnalysisWithResume(ctx, resume, analysis)).To(Succeed())
		Expect(analysis.ResumeID).NotTo(BeNil())
		Expect(*analysis.ResumeID).To(Equal(resume.ID))

		got, err := repo.GetAnalysis(ctx, analysis.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(*got.ATSScore).To(Equal(65))
		Expect([]string(got.Strengths)).To(Equal([]string{"clear formatting"}))
	})

	It("returns nil for a missing record and reports deletes", func() {
		got, err := repo.GetAnalysis(ctx, "6f1c1b9e-2f63-4c55-9d7c-000000000000")
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(BeNil())

		a := completedAnalysis("gone.pdf", 40, time.Now())
		Expect(repo.CreateAnalysis(ctx, a)).To(Succeed())

		deleted, err := repo.DeleteAnalysis(ctx, a.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(deleted).To(BeTrue())

		deleted, err = repo.DeleteAnalysis(ctx, a.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(deleted).To(BeFalse())
	})
})
