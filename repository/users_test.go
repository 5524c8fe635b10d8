package repository_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/resumeiq/backend/models"
	"github.com/resumeiq/backend/repository"
)

var _ = Describe("User store", func() {
	var ctx context.Context

	BeforeEach(func() {
		requireDB()
		ctx = context.Background()
	})

	It("rejects a duplicate username", func() {
		Expect(repo.CreateUser(ctx, &models.User{Username: "demo", Password: "x"})).To(Succeed())
		err := repo.CreateUser(ctx, &models.User{Username: "demo", Password: "y"})
		Expect(err).To(MatchError(repository.ErrUsernameTaken))
	})

	It("returns nil for an unknown user", func() {
		user, err := repo.GetUserByUsername(ctx, "nobody")
		Expect(err).NotTo(HaveOccurred())
		Expect(user).To(BeNil())
	})

	It("finds live refresh tokens and revokes them on logout", func() {
		user := &models.User{Username: "jane", Password: "x"}
		Expect(repo.CreateUser(ctx, user)).To(Succeed())

		Expect(repo.CreateRefreshToken(ctx, &models.RefreshToken{UserID: user.ID, Token: "live", ExpiresAt: time.Now().Add(time.Hour)})).To(Succeed())
		Expect(repo.CreateRefreshToken(ctx, &models.RefreshToken{UserID: user.ID, Token: "stale", ExpiresAt: time.Now().Add(-time.Hour)})).To(Succeed())

		live, err := repo.GetRefreshToken(ctx, "live")
		Expect(err).NotTo(HaveOccurred())
		Expect(live).NotTo(BeNil())
		Expect(live.UserID).To(Equal(user.ID))

		stale, err := repo.GetRefreshToken(ctx, "stale")
		Expect(err).NotTo(HaveOccurred())
		Expect(stale).To(BeNil())

		Expect(repo.DeleteAllUserTokens(ctx, user.ID)).To(Succeed())
		live, err = repo.GetRefreshToken(ctx, "live")
		Expect(err).NotTo(HaveOccurred())
		Expect(live).To(BeNil())
	})
})
