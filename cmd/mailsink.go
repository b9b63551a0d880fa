package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kubev2v/smtp-gateway-agent/internal/config"
	"github.com/kubev2v/smtp-gateway-agent/pkg/mailsink"
	"github.com/kubev2v/smtp-gateway-agent/pkg/mask"
)

func NewMailSinkCommand(cfg *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mail-sink",
		Short: "Serve a fake SMTP gateway that authenticates one user and discards mail",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			srv, err := mailsink.NewServer(mailSinkConfig(cfg.MailSink))
			if err != nil {
				return err
			}

			zap.S().Infow("mail sink configured",
				"addr", cfg.MailSink.Addr,
				"user", cfg.MailSink.Username,
				"password", mask.Password(cfg.MailSink.Password),
				"starttls", cfg.MailSink.STARTTLS,
			)

			return serve(ctx, "mail-sink", &sinkRunner{srv: srv})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.MailSink.Addr, "mail-sink-addr", cfg.MailSink.Addr, "Listen address of the fake gateway")
	flags.StringVar(&cfg.MailSink.Domain, "mail-sink-domain", cfg.MailSink.Domain, "Domain announced in the greeting")
	flags.StringVar(&cfg.MailSink.Username, "mail-sink-username", cfg.MailSink.Username, "The only accepted username")
	flags.StringVar(&cfg.MailSink.Password, "mail-sink-password", cfg.MailSink.Password, "The only accepted password")
	flags.BoolVar(&cfg.MailSink.STARTTLS, "mail-sink-starttls", cfg.MailSink.STARTTLS, "Offer STARTTLS with a self-signed certificate")
	flags.DurationVar(&cfg.MailSink.ReadTimeout, "mail-sink-read-timeout", cfg.MailSink.ReadTimeout, "Read timeout per command")
	flags.DurationVar(&cfg.MailSink.WriteTimeout, "mail-sink-write-timeout", cfg.MailSink.WriteTimeout, "Write timeout per reply")
	flags.Int64Var(&cfg.MailSink.MaxMessageBytes, "mail-sink-max-message-bytes", cfg.MailSink.MaxMessageBytes, "Largest accepted message")
	flags.IntVar(&cfg.MailSink.MaxRecipients, "mail-sink-max-recipients", cfg.MailSink.MaxRecipients, "Recipients accepted per message")

	return cmd
}

func mailSinkConfig(c config.MailSink) mailsink.Config {
	return mailsink.Config{
		Addr:            c.Addr,
		Domain:          c.Domain,
		Username:        c.Username,
		Password:        c.Password,
		STARTTLS:        c.STARTTLS,
		ReadTimeout:     c.ReadTimeout,
		WriteTimeout:    c.WriteTimeout,
		MaxMessageBytes: c.MaxMessageBytes,
		MaxRecipients:   c.MaxRecipients,
	}
}

type sinkRunner struct {
	srv *mailsink.Server
}

func (r *sinkRunner) Start(_ context.Context) error {
	return r.srv.ListenAndServe()
}

func (r *sinkRunner) Stop(ctx context.Context) {
	if err := r.srv.Shutdown(ctx); err != nil {
		zap.S().Errorw("mail sink shutdown", "error", err)
	}
	zap.S().Infow("mail sink stopped", "discarded", r.srv.Discarded())
}
