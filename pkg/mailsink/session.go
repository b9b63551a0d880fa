package mailsink

import (
	"io"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"

	"github.com/kubev2v/smtp-gateway-agent/pkg/mask"
)

var (
	errAuthRequired = &smtp.SMTPError{
		Code:         530,
		EnhancedCode: smtp.EnhancedCode{5, 7, 0},
		Message:      "Authentication required",
	}
	errAuthFailed = &smtp.SMTPError{
		Code:         535,
		EnhancedCode: smtp.EnhancedCode{5, 7, 8},
		Message:      "Authentication credentials invalid",
	}
	errAuthUnsupported = &smtp.SMTPError{
		Code:         504,
		EnhancedCode: smtp.EnhancedCode{5, 5, 4},
		Message:      "Authentication mechanism not supported",
	}
	errTooManyRecipients = &smtp.SMTPError{
		Code:         452,
		EnhancedCode: smtp.EnhancedCode{4, 5, 3},
		Message:      "Too many recipients",
	}
)

// Session handles one SMTP connection. Mail transactions are refused until
// the client authenticates.
type Session struct {
	backend *Backend
	remote  string

	authenticated bool
	from          string
	to            []string
}

var _ smtp.AuthSession = (*Session)(nil)

func (s *Session) AuthMechanisms() []string {
	return []string{sasl.Plain, sasl.Login, CramMD5}
}

func (s *Session) Auth(mech string) (sasl.Server, error) {
	switch mech {
	case sasl.Plain:
		return sasl.NewPlainServer(func(identity, username, password string) error {
			return s.login(mech, username, s.backend.checkPassword(username, password))
		}), nil
	case sasl.Login:
		return newLoginServer(func(username, password string) error {
			return s.login(mech, username, s.backend.checkPassword(username, password))
		}), nil
	case CramMD5:
		return newCramMD5Server(s.backend.domain, func(username string, digest, challenge []byte) error {
			return s.login(mech, username, s.backend.checkDigest(username, digest, challenge))
		}), nil
	default:
		return nil, errAuthUnsupported
	}
}

func (s *Session) login(mech, username string, ok bool) error {
	if !ok {
		s.backend.log.Warnw("auth failed", "mechanism", mech, "user", mask.Username(username), "remote", s.remote)
		return errAuthFailed
	}

	s.authenticated = true
	s.backend.log.Infow("auth succeeded", "mechanism", mech, "user", mask.Username(username), "remote", s.remote)
	return nil
}

func (s *Session) Mail(from string, opts *smtp.MailOptions) error {
	if !s.authenticated {
		return errAuthRequired
	}
	s.from = from
	return nil
}

func (s *Session) Rcpt(to string, opts *smtp.RcptOptions) error {
	if !s.authenticated {
		return errAuthRequired
	}
	if len(s.to) >= s.backend.maxRecipients {
		return errTooManyRecipients
	}
	s.to = append(s.to, to)
	return nil
}

// Data reads and drops the message.
func (s *Session) Data(r io.Reader) error {
	if !s.authenticated {
		return errAuthRequired
	}

	n, err := io.Copy(io.Discard, r)
	if err != nil {
		return err
	}

	s.backend.discarded.Add(1)
	s.backend.log.Infow("message discarded", "from", mask.Email(s.from), "recipients", len(s.to), "bytes", n)
	return nil
}

func (s *Session) Reset() {
	s.from = ""
	s.to = nil
}

func (s *Session) Logout() error {
	return nil
}
