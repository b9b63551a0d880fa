package services_test

import (
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/smtp-gateway-agent/internal/models"
	"github.com/kubev2v/smtp-gateway-agent/internal/services"
	"github.com/kubev2v/smtp-gateway-agent/internal/store"
	"github.com/kubev2v/smtp-gateway-agent/internal/store/migrations"
)

var _ = Describe("GatewayService", func() {
	var (
		ctx context.Context
		db  *sql.DB
		srv *services.GatewayService
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(store.MemoryDB)
		Expect(err).NotTo(HaveOccurred())
		Expect(migrations.Run(ctx, db)).To(Succeed())

		srv = services.NewGatewayService(store.NewStore(db))
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Describe("Snapshot", func() {
		It("should return the defaults before any edit", func() {
			cfg, err := srv.Snapshot(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg).To(Equal(models.DefaultGatewayConfig()))
		})
	})

	Describe("UpdateField", func() {
		// Given a field updated twice
		// When we take a snapshot
		// Then the last value wins and the other fields keep their values
		It("should keep the last value and preserve other fields", func() {
			// Arrange
			Expect(srv.UpdateField(ctx, models.FieldPrimaryGateway, "smtp.old.com")).To(Succeed())
			Expect(srv.UpdateField(ctx, models.FieldReplyAddress, "printer@example.com")).To(Succeed())

			// Act
			err := srv.UpdateField(ctx, models.FieldPrimaryGateway, "smtp.new.com")

			// Assert
			Expect(err).NotTo(HaveOccurred())
			cfg, err := srv.Snapshot(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.PrimaryGateway).To(Equal("smtp.new.com"))
			Expect(cfg.ReplyAddress).To(Equal("printer@example.com"))
			Expect(cfg.PrimaryPort).To(Equal("587"))
		})

		It("should store values without validating them", func() {
			Expect(srv.UpdateField(ctx, models.FieldPrimaryPort, "not-a-port")).To(Succeed())
			Expect(srv.UpdateField(ctx, models.FieldUseSSL, "quantum")).To(Succeed())

			cfg, err := srv.Snapshot(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.PrimaryPort).To(Equal("not-a-port"))
			Expect(cfg.UseSSL).To(Equal(models.SSLMode("quantum")))
		})

		It("should store the password", func() {
			Expect(srv.UpdateField(ctx, models.FieldDevicePassword, "s3cret")).To(Succeed())

			cfg, err := srv.Snapshot(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.DevicePassword).To(Equal("s3cret"))
		})
	})

	Describe("Save", func() {
		It("should return the current draft", func() {
			Expect(srv.UpdateField(ctx, models.FieldPrimaryGateway, "smtp.example.com")).To(Succeed())

			cfg, err := srv.Save(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.PrimaryGateway).To(Equal("smtp.example.com"))
		})
	})
})
