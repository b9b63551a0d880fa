// Package smtpprobe runs the SMTP handshake behind a connection test and
// reports every step as a diagnostic line.
package smtpprobe

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/kubev2v/smtp-gateway-agent/internal/models"
)

const (
	DefaultTimeout  = 10 * time.Second
	DefaultHeloName = "localhost"

	implicitTLSPort = 465
)

var errStartTLSNotOffered = errors.New("STARTTLS extension not supported by server")

// Target is the gateway under test.
type Target struct {
	Host     string
	Port     int
	SSL      models.SSLMode
	Auth     models.AuthMechanism
	Username string
	Password string
}

// Result is the outcome of one probe.
type Result struct {
	Success bool
	Message string
	Details []models.DiagnosticLine
}

type Resolver interface {
	LookupNetIP(ctx context.Context, network, host string) ([]netip.Addr, error)
}

type Options struct {
	// Timeout bounds DNS resolution, the TCP dial, the TLS handshake and each command.
	Timeout  time.Duration
	HeloName string
	// AllowPrivateTargets disables the private address guard.
	AllowPrivateTargets bool
	Resolver            Resolver
	// TLSConfig is cloned for every connection. ServerName is set to the target host.
	TLSConfig *tls.Config
}

type Prober struct {
	opts Options
}

func New(opts Options) *Prober {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.HeloName == "" {
		opts.HeloName = DefaultHeloName
	}
	if opts.Resolver == nil {
		opts.Resolver = net.DefaultResolver
	}
	return &Prober{opts: opts}
}

// Probe resolves, connects, secures and authenticates against t and quits.
// It never returns an error: every failure ends up as a diagnostic line.
func (p *Prober) Probe(ctx context.Context, t Target) Result {
	log := zap.S().Named("smtp_probe")
	r := &recorder{}

	log.Infow("testing smtp connection", "host", t.Host, "port", t.Port, "ssl", t.SSL, "auth", t.Auth)
	r.add(models.DiagnosticInfo, "Testing connection to %s:%d...", t.Host, t.Port)

	ip, err := p.resolve(ctx, t.Host)
	if err != nil {
		log.Errorw("dns resolution failed", "host", t.Host, "error", err)
		r.add(models.DiagnosticError, "✗ Cannot resolve hostname: %s", t.Host)
		return r.fail("DNS resolution failed")
	}
	r.add(models.DiagnosticSuccess, "✓ DNS resolution successful: %s -> %s", t.Host, ip)

	if !p.opts.AllowPrivateTargets && IsBlocked(ip) {
		log.Warnw("private target blocked", "host", t.Host, "ip", ip)
		r.add(models.DiagnosticError, "✗ Hostname resolves to a private/reserved IP (%s), connection blocked", ip)
		return r.fail("SSRF protection: target IP is not permitted")
	}

	r.add(models.DiagnosticInfo, "Attempting connection to port %d...", t.Port)

	c, err := p.connect(ctx, t, ip, r)
	if err != nil {
		log.Errorw("connection failed", "host", t.Host, "port", t.Port, "error", err)
		return r.fail(connectionFailure(t, err, r))
	}
	defer c.Close()

	if t.Auth != models.AuthMechanismNone && t.Username != "" && t.Password != "" {
		r.add(models.DiagnosticInfo, "Attempting authentication as %s...", t.Username)

		if err := c.Auth(saslClient(c.Client, t)); err != nil {
			_ = c.Quit()
			if isAuthRejected(err) {
				log.Errorw("smtp auth rejected", "host", t.Host, "error", err)
				r.add(models.DiagnosticError, "✗ Authentication failed: Invalid username or password")
				return r.fail("Authentication failed")
			}
			log.Errorw("smtp auth error", "host", t.Host, "error", err)
			r.add(models.DiagnosticError, "✗ Authentication error: %v", err)
			return r.fail("Authentication error")
		}

		r.add(models.DiagnosticSuccess, "✓ Authentication successful!")
		r.add(models.DiagnosticSuccess, "✓ SMTP account is ready to send emails")
	} else {
		r.add(models.DiagnosticWarning, "⚠ No authentication configured - skipping auth test")
	}

	if err := c.Quit(); err != nil {
		log.Debugw("quit failed", "host", t.Host, "error", err)
	}

	r.add(models.DiagnosticSuccess, "\n✓ ALL TESTS PASSED! SMTP configuration is valid and working.")
	log.Infow("smtp test completed successfully", "host", t.Host, "port", t.Port)

	return Result{Success: true, Message: "SMTP connection test successful", Details: r.lines}
}

// resolve prefers an IPv4 address.
func (p *Prober) resolve(ctx context.Context, host string) (netip.Addr, error) {
	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	addrs, err := p.opts.Resolver.LookupNetIP(ctx, "ip", host)
	if err != nil {
		return netip.Addr{}, err
	}
	if len(addrs) == 0 {
		return netip.Addr{}, fmt.Errorf("no address for %s", host)
	}

	for _, a := range addrs {
		if a.Unmap().Is4() {
			return a.Unmap(), nil
		}
	}
	return addrs[0], nil
}

// conn is an SMTP client whose connection is closed when its context
// ends.
type conn struct {
	*smtp.Client
	stop func() bool
}

func (c *conn) Close() error {
	c.stop()
	return c.Client.Close()
}

type handshake func(nc net.Conn) (*smtp.Client, error)

// open dials addr and runs hs on the new connection.
func (p *Prober) open(ctx context.Context, addr string, hs handshake) (*conn, error) {
	dialer := &net.Dialer{Timeout: p.opts.Timeout}
	nc, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	// unblocks any pending command when ctx is cancelled
	stop := context.AfterFunc(ctx, func() { nc.Close() })

	c, err := hs(nc)
	if err != nil {
		stop()
		nc.Close()
		return nil, err
	}
	c.CommandTimeout = p.opts.Timeout

	return &conn{Client: c, stop: stop}, nil
}

func (p *Prober) plain(nc net.Conn) (*smtp.Client, error) {
	c := smtp.NewClient(nc)
	c.CommandTimeout = p.opts.Timeout
	if err := c.Hello(p.opts.HeloName); err != nil {
		return nil, err
	}
	return c, nil
}

func (p *Prober) implicitTLS(host string) handshake {
	return func(nc net.Conn) (*smtp.Client, error) {
		tlsConn := tls.Client(nc, p.tlsConfig(host))

		ctx, cancel := context.WithTimeout(context.Background(), p.opts.Timeout)
		defer cancel()
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			return nil, err
		}
		return p.plain(tlsConn)
	}
}

// startTLS greets, sends EHLO and upgrades with STARTTLS.
func (p *Prober) startTLS(host string) handshake {
	return func(nc net.Conn) (*smtp.Client, error) {
		_ = nc.SetDeadline(time.Now().Add(p.opts.Timeout))
		c, err := smtp.NewClientStartTLS(nc, p.tlsConfig(host))
		if err != nil {
			return nil, err
		}
		_ = nc.SetDeadline(time.Time{})
		return c, nil
	}
}

// connect dials the resolved address so the guarded IP is the one reached.
// A failed STARTTLS upgrade is reported as a warning and the probe goes on
// over a new plain connection.
func (p *Prober) connect(ctx context.Context, t Target, ip netip.Addr, r *recorder) (*conn, error) {
	addr := net.JoinHostPort(ip.String(), strconv.Itoa(t.Port))

	if t.SSL == models.SSLModeSSL || t.Port == implicitTLSPort {
		c, err := p.open(ctx, addr, p.implicitTLS(t.Host))
		if err != nil {
			return nil, err
		}
		r.add(models.DiagnosticSuccess, "✓ Connected using SSL/TLS (port %d)", t.Port)
		return c, nil
	}

	c, err := p.open(ctx, addr, p.plain)
	if err != nil {
		return nil, err
	}
	r.add(models.DiagnosticSuccess, "✓ Connected to SMTP server")

	if t.SSL != models.SSLModeNegotiate && t.SSL != models.SSLModeTLS {
		return c, nil
	}

	if ok, _ := c.Extension("STARTTLS"); !ok {
		r.add(models.DiagnosticWarning, "⚠ STARTTLS failed: %v", errStartTLSNotOffered)
		return c, nil
	}

	_ = c.Quit()
	c.Close()

	tc, err := p.open(ctx, addr, p.startTLS(t.Host))
	if err != nil {
		zap.S().Named("smtp_probe").Debugw("starttls failed", "host", t.Host, "error", err)
		r.add(models.DiagnosticWarning, "⚠ STARTTLS failed: %v", err)
		return p.open(ctx, addr, p.plain)
	}

	r.add(models.DiagnosticSuccess, "✓ STARTTLS negotiation successful")
	return tc, nil
}

func (p *Prober) tlsConfig(host string) *tls.Config {
	var cfg *tls.Config
	if p.opts.TLSConfig != nil {
		cfg = p.opts.TLSConfig.Clone()
	} else {
		cfg = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	cfg.ServerName = host
	return cfg
}

// saslClient picks PLAIN unless the server only offers LOGIN.
func saslClient(c *smtp.Client, t Target) sasl.Client {
	if t.Auth == models.AuthMechanismCramMD5 {
		return NewCramMD5Client(t.Username, t.Password)
	}

	if ok, params := c.Extension("AUTH"); ok {
		mechs := strings.Fields(strings.ToUpper(params))
		if !contains(mechs, sasl.Plain) && contains(mechs, sasl.Login) {
			return sasl.NewLoginClient(t.Username, t.Password)
		}
	}
	return sasl.NewPlainClient("", t.Username, t.Password)
}

func isAuthRejected(err error) bool {
	var smtpErr *smtp.SMTPError
	if !errors.As(err, &smtpErr) {
		return false
	}
	return smtpErr.Code == 535 || smtpErr.EnhancedCode == smtp.EnhancedCode{5, 7, 8}
}

// connectionFailure records the error line for a failed connection and
// returns the summary message.
func connectionFailure(t Target, err error, r *recorder) string {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		r.add(models.DiagnosticError, "✗ Connection timeout - server not responding")
		return "Connection timeout"
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		r.add(models.DiagnosticError, "✗ Cannot connect to %s:%d", t.Host, t.Port)
		return "Connection failed"
	}

	r.add(models.DiagnosticError, "✗ Connection error: %v", err)
	return fmt.Sprintf("Connection error: %v", err)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type recorder struct {
	lines []models.DiagnosticLine
}

func (r *recorder) add(kind models.DiagnosticKind, format string, args ...any) {
	r.lines = append(r.lines, models.DiagnosticLine{Kind: kind, Message: fmt.Sprintf(format, args...)})
}

func (r *recorder) fail(message string) Result {
	return Result{Success: false, Message: message, Details: r.lines}
}
