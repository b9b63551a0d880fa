package cmd

import (
	"crypto/tls"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kubev2v/smtp-gateway-agent/internal/config"
	"github.com/kubev2v/smtp-gateway-agent/internal/server"
	"github.com/kubev2v/smtp-gateway-agent/internal/validator"
	"github.com/kubev2v/smtp-gateway-agent/pkg/smtpprobe"
)

func NewValidatorCommand(cfg *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validator",
		Short: "Serve the SMTP validation API",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return validateValidatorConfiguration(cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			prober := smtpprobe.New(smtpprobe.Options{
				Timeout:             cfg.Validator.Timeout,
				HeloName:            cfg.Validator.HeloName,
				AllowPrivateTargets: cfg.Validator.AllowPrivateTargets,
				TLSConfig:           &tls.Config{MinVersion: tls.VersionTLS12},
			})

			h := validator.NewHandler(prober, validator.Options{
				Version:   cfg.Validator.Version,
				RateLimit: cfg.Validator.RateLimit,
				RateBurst: cfg.Validator.RateBurst,
			})

			srv, err := server.NewServer(server.Options{
				HTTPPort:   cfg.Validator.HTTPPort,
				ServerMode: server.DevServer,
			}, h.Register)
			if err != nil {
				return err
			}

			if cfg.Validator.AllowPrivateTargets {
				zap.S().Warnw("private targets allowed: probes may reach internal addresses")
			}

			return serve(ctx, "validator", srv)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cfg.Validator.HTTPPort, "validator-http-port", cfg.Validator.HTTPPort, "Port of the validation API")
	flags.DurationVar(&cfg.Validator.Timeout, "probe-timeout", cfg.Validator.Timeout, "Timeout of each probe step")
	flags.BoolVar(&cfg.Validator.AllowPrivateTargets, "allow-private-targets", cfg.Validator.AllowPrivateTargets, "Allow probes to private and reserved addresses")
	flags.Float64Var(&cfg.Validator.RateLimit, "rate-limit", cfg.Validator.RateLimit, "Probes per second (0 disables limiting)")
	flags.IntVar(&cfg.Validator.RateBurst, "rate-burst", cfg.Validator.RateBurst, "Burst of probes allowed above the rate")
	flags.StringVar(&cfg.Validator.HeloName, "helo-name", cfg.Validator.HeloName, "Name sent in EHLO")
	flags.StringVar(&cfg.Validator.Version, "version", cfg.Validator.Version, "Version reported by GET /")

	return cmd
}

func validateValidatorConfiguration(cfg *config.Configuration) error {
	if err := validatePort("validator-http-port", cfg.Validator.HTTPPort); err != nil {
		return err
	}
	if cfg.Validator.Timeout <= 0 {
		return fmt.Errorf("invalid probe-timeout %s: must be positive", cfg.Validator.Timeout)
	}
	if cfg.Validator.RateLimit < 0 {
		return errors.New("rate-limit cannot be negative")
	}
	if cfg.Validator.RateLimit > 0 && cfg.Validator.RateBurst < 1 {
		return fmt.Errorf("invalid rate-burst %d: must be at least 1", cfg.Validator.RateBurst)
	}
	return nil
}
