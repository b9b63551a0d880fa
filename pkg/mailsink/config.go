package mailsink

import (
	"time"

	"github.com/roadrunner-server/errors"
)

// Config of the fake gateway. Exactly one user is accepted.
type Config struct {
	// Addr: listen address (e.g. "0.0.0.0:587")
	Addr string
	// Domain: name returned in the greeting and EHLO response
	Domain string

	Username string
	Password string

	// STARTTLS: offer STARTTLS with a self-signed certificate
	STARTTLS bool

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	MaxMessageBytes int64
	MaxRecipients   int
}

// InitDefault validates the configuration and fills in defaults.
func (c *Config) InitDefault() error {
	const op = errors.Op("mailsink_config_init_default")

	if c.Addr == "" {
		return errors.E(op, errors.Str("empty listen address"))
	}

	if c.Username == "" || c.Password == "" {
		return errors.E(op, errors.Str("username and password must be set"))
	}

	if c.Domain == "" {
		c.Domain = "localhost"
	}

	if c.ReadTimeout == 0 {
		c.ReadTimeout = 60 * time.Second
	}

	if c.WriteTimeout == 0 {
		c.WriteTimeout = 10 * time.Second
	}

	// 10MB
	if c.MaxMessageBytes == 0 {
		c.MaxMessageBytes = 10 * 1024 * 1024
	}

	if c.MaxRecipients == 0 {
		c.MaxRecipients = 100
	}

	if c.MaxMessageBytes < 0 || c.MaxRecipients < 0 {
		return errors.E(op, errors.Errorf("invalid limits: max message bytes %d, max recipients %d", c.MaxMessageBytes, c.MaxRecipients))
	}

	return nil
}
