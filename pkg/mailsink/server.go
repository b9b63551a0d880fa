// Package mailsink is a fake SMTP gateway. It requires authentication as a
// single configured user and silently discards every message, so the
// connection test can run end to end without sending mail anywhere.
package mailsink

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/kubev2v/smtp-gateway-agent/pkg/certificates"
)

type Server struct {
	cfg     Config
	backend *Backend
	srv     *smtp.Server
}

// NewServer validates cfg and builds the server. With STARTTLS enabled a
// self-signed certificate for the configured domain is generated.
func NewServer(cfg Config) (*Server, error) {
	if err := cfg.InitDefault(); err != nil {
		return nil, err
	}

	log := zap.S().Named("mail_sink")
	be := newBackend(cfg, log)

	s := smtp.NewServer(be)
	s.Addr = cfg.Addr
	s.Domain = cfg.Domain
	s.ReadTimeout = cfg.ReadTimeout
	s.WriteTimeout = cfg.WriteTimeout
	s.MaxMessageBytes = cfg.MaxMessageBytes
	s.MaxRecipients = cfg.MaxRecipients
	// STARTTLS is offered, not required
	s.AllowInsecureAuth = true

	if cfg.STARTTLS {
		tlsConfig, err := certificates.NewSelfSignedTLSConfig(time.Now().AddDate(1, 0, 0), cfg.Domain)
		if err != nil {
			return nil, err
		}
		s.TLSConfig = tlsConfig
	}

	return &Server{cfg: cfg, backend: be, srv: s}, nil
}

func (s *Server) ListenAndServe() error {
	zap.S().Named("mail_sink").Infow("starting mail sink",
		"addr", s.cfg.Addr, "domain", s.cfg.Domain, "starttls", s.cfg.STARTTLS)
	return s.filterClosed(s.srv.ListenAndServe())
}

func (s *Server) Serve(l net.Listener) error {
	return s.filterClosed(s.srv.Serve(l))
}

// Shutdown stops accepting connections and waits for open sessions.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.srv.Close()
}

// Discarded is the number of messages accepted and dropped so far.
func (s *Server) Discarded() int64 {
	return s.backend.discarded.Load()
}

func (s *Server) filterClosed(err error) error {
	if errors.Is(err, smtp.ErrServerClosed) {
		return nil
	}
	return err
}
