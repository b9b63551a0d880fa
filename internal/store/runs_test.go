package store_test

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/smtp-gateway-agent/internal/models"
	"github.com/kubev2v/smtp-gateway-agent/internal/store"
	"github.com/kubev2v/smtp-gateway-agent/internal/store/migrations"
	srvErrors "github.com/kubev2v/smtp-gateway-agent/pkg/errors"
)

func newRun(status models.TestStatus, startedAt time.Time, lines ...models.DiagnosticLine) models.TestRun {
	return models.TestRun{
		ID:          uuid.New(),
		Status:      status,
		Diagnostics: lines,
		StartedAt:   startedAt,
		CompletedAt: startedAt.Add(time.Second),
	}
}

var _ = Describe("TestRunStore", func() {
	var (
		ctx context.Context
		s   *store.Store
		db  *sql.DB
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(store.MemoryDB)
		Expect(err).NotTo(HaveOccurred())

		err = migrations.Run(ctx, db)
		Expect(err).NotTo(HaveOccurred())

		s = store.NewStore(db)
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Context("Insert and Get", func() {
		// Given an inserted run
		// When we get it by id
		// Then status and diagnostics round-trip in order
		It("should return the stored run", func() {
			// Arrange
			run := newRun(models.TestStatusFailed, time.Now().UTC().Truncate(time.Second),
				models.DiagnosticLine{Kind: models.DiagnosticInfo, Message: "Testing connection to smtp.example.com:587..."},
				models.DiagnosticLine{Kind: models.DiagnosticError, Message: "✗ Authentication failed: Invalid username or password"},
			)

			// Act
			Expect(s.TestRuns().Insert(ctx, run)).To(Succeed())
			got, err := s.TestRuns().Get(ctx, run.ID)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal(run.ID))
			Expect(got.Status).To(Equal(models.TestStatusFailed))
			Expect(got.Diagnostics).To(Equal(run.Diagnostics))
			Expect(got.StartedAt.Equal(run.StartedAt)).To(BeTrue())
		})

		// Given an empty store
		// When we get an unknown run
		// Then a not found error is returned
		It("should return not found for unknown id", func() {
			_, err := s.TestRuns().Get(ctx, uuid.New())
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})
	})

	Context("List", func() {
		// Given three runs
		// When we list with a limit of two
		// Then the two newest runs are returned newest first
		It("should return newest runs first up to limit", func() {
			// Arrange
			base := time.Now().UTC().Truncate(time.Second)
			oldest := newRun(models.TestStatusSuccess, base.Add(-2*time.Minute))
			middle := newRun(models.TestStatusFailed, base.Add(-time.Minute))
			newest := newRun(models.TestStatusSuccess, base)
			for _, r := range []models.TestRun{middle, newest, oldest} {
				Expect(s.TestRuns().Insert(ctx, r)).To(Succeed())
			}

			// Act
			runs, err := s.TestRuns().List(ctx, 2)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(runs).To(HaveLen(2))
			Expect(runs[0].ID).To(Equal(newest.ID))
			Expect(runs[1].ID).To(Equal(middle.ID))
		})

		It("should return an empty list when no runs exist", func() {
			runs, err := s.TestRuns().List(ctx, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(runs).To(BeEmpty())
		})
	})
})
