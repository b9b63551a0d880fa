package store_test

import (
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/smtp-gateway-agent/internal/models"
	"github.com/kubev2v/smtp-gateway-agent/internal/store"
	"github.com/kubev2v/smtp-gateway-agent/internal/store/migrations"
)

var _ = Describe("GatewayStore", func() {
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

	Context("Get", func() {
		// Given an empty gateway store
		// When we read the draft
		// Then it should hold the editor defaults
		It("should return defaults when nothing was written", func() {
			// Act
			cfg, err := s.Gateway().Get(ctx)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg).To(Equal(models.DefaultGatewayConfig()))
			Expect(cfg.PrimaryPort).To(Equal("587"))
			Expect(cfg.UseSSL).To(Equal(models.SSLModeNegotiate))
			Expect(cfg.SMTPAuth).To(Equal(models.AuthMechanismLoginPlain))
		})
	})

	Context("UpdateField", func() {
		// Given a written field
		// When we read the draft
		// Then only that field changed
		It("should replace one field and keep the others", func() {
			// Act
			err := s.Gateway().UpdateField(ctx, models.FieldPrimaryGateway, "smtp.example.com")
			Expect(err).NotTo(HaveOccurred())

			// Assert
			cfg, err := s.Gateway().Get(ctx)
			Expect(err).NotTo(HaveOccurred())
			expected := models.DefaultGatewayConfig()
			expected.PrimaryGateway = "smtp.example.com"
			Expect(cfg).To(Equal(expected))
		})

		// Given a field written several times interleaved with other fields
		// When we read the draft
		// Then each field holds its last written value
		It("should keep the last value written per field", func() {
			// Arrange
			writes := [][2]string{
				{models.FieldPrimaryPort, "25"},
				{models.FieldReplyAddress, "printer@example.com"},
				{models.FieldPrimaryPort, "465"},
				{models.FieldUseSSL, "ssl"},
				{models.FieldReplyAddress, "scanner@example.com"},
				{models.FieldPrimaryPort, "2525"},
			}

			// Act
			for _, w := range writes {
				Expect(s.Gateway().UpdateField(ctx, w[0], w[1])).To(Succeed())
			}

			// Assert
			cfg, err := s.Gateway().Get(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.PrimaryPort).To(Equal("2525"))
			Expect(cfg.ReplyAddress).To(Equal("scanner@example.com"))
			Expect(cfg.UseSSL).To(Equal(models.SSLModeSSL))
			Expect(cfg.SMTPAuth).To(Equal(models.AuthMechanismLoginPlain))
		})

		// Given malformed values
		// When we write them
		// Then they are stored verbatim
		It("should not validate values", func() {
			Expect(s.Gateway().UpdateField(ctx, models.FieldPrimaryPort, "not-a-port")).To(Succeed())
			Expect(s.Gateway().UpdateField(ctx, models.FieldUseSSL, "quantum")).To(Succeed())

			cfg, err := s.Gateway().Get(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.PrimaryPort).To(Equal("not-a-port"))
			Expect(cfg.UseSSL).To(Equal(models.SSLMode("quantum")))
		})

		// Given an unknown field name
		// When we write it
		// Then it is kept in the field map but not projected onto the draft
		It("should accept unknown field names", func() {
			Expect(s.Gateway().UpdateField(ctx, "faxNumber", "555-0100")).To(Succeed())

			fields, err := s.Gateway().Fields(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(fields).To(HaveKeyWithValue("faxNumber", "555-0100"))

			cfg, err := s.Gateway().Get(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg).To(Equal(models.DefaultGatewayConfig()))
		})
	})
})
