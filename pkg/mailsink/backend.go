package mailsink

import (
	"crypto/hmac"
	"crypto/subtle"
	"sync/atomic"

	"github.com/emersion/go-smtp"
	"go.uber.org/zap"
)

// Backend creates one session per connection. Every message is discarded.
type Backend struct {
	domain   string
	username string
	password string

	maxRecipients int

	discarded atomic.Int64

	log *zap.SugaredLogger
}

func newBackend(cfg Config, log *zap.SugaredLogger) *Backend {
	return &Backend{
		domain:        cfg.Domain,
		username:      cfg.Username,
		password:      cfg.Password,
		maxRecipients: cfg.MaxRecipients,
		log:           log,
	}
}

// NewSession is called by go-smtp for each new connection.
func (b *Backend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	remote := ""
	if conn := c.Conn(); conn != nil {
		remote = conn.RemoteAddr().String()
	}
	return &Session{backend: b, remote: remote}, nil
}

func (b *Backend) checkPassword(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(b.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(b.password)) == 1
	return userOK && passOK
}

func (b *Backend) checkDigest(username string, digest, challenge []byte) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(b.username)) == 1
	digestOK := hmac.Equal(digest, cramMD5Digest(b.password, challenge))
	return userOK && digestOK
}
