package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/smtp-gateway-agent/internal/config"
	"github.com/kubev2v/smtp-gateway-agent/pkg/validator"
)

var _ = Describe("Check Command", func() {
	var (
		cfg      *config.Configuration
		ts       *httptest.Server
		mu       sync.Mutex
		received []validator.Request
		reply    validator.Response
		out      *bytes.Buffer
	)

	BeforeEach(func() {
		color.NoColor = true
		cfg = config.NewConfigurationWithOptionsAndDefaults()
		received = nil
		out = &bytes.Buffer{}

		ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req validator.Request
			_ = json.NewDecoder(r.Body).Decode(&req)
			mu.Lock()
			received = append(received, req)
			mu.Unlock()

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(reply)
		}))
	})

	AfterEach(func() {
		ts.Close()
	})

	run := func(args ...string) error {
		cmd := NewCheckCommand(cfg)
		cmd.SetOut(out)
		cmd.SetArgs(append([]string{"--validator-url", ts.URL}, args...))
		return cmd.Execute()
	}

	// Given a validation service reporting success
	// When check runs against a gateway
	// Then every diagnostic line is printed and the command succeeds
	It("prints the diagnostics of a successful test", func() {
		// Arrange
		reply = validator.Response{
			Success: true,
			Message: "SMTP connection test successful",
			Details: []validator.Detail{
				{Type: "info", Message: "Testing connection to smtp.example.com:587..."},
				{Type: "success", Message: "✓ Connected to SMTP server"},
			},
		}

		// Act
		err := run("--host", "smtp.example.com", "--user", "printer", "--password", "secret")

		// Assert
		Expect(err).ToNot(HaveOccurred())
		Expect(out.String()).To(ContainSubstring("Testing connection to smtp.example.com:587..."))
		Expect(out.String()).To(ContainSubstring("✓ Connected to SMTP server"))
		Expect(out.String()).To(ContainSubstring("Connection successful"))

		mu.Lock()
		defer mu.Unlock()
		Expect(received).To(HaveLen(1))
		Expect(received[0].PrimaryGateway).To(Equal("smtp.example.com"))
		Expect(*received[0].PrimaryPort).To(Equal(587))
		Expect(received[0].UseSSL).To(Equal("negotiate"))
		Expect(received[0].SMTPAuth).To(Equal("login-plain"))
		Expect(received[0].DevicePassword).To(Equal("secret"))
	})

	It("fails when the test fails", func() {
		// Arrange
		reply = validator.Response{
			Success: false,
			Message: "Authentication failed",
			Details: []validator.Detail{
				{Type: "error", Message: "✗ Authentication failed: Invalid username or password"},
			},
		}

		// Act
		err := run("--host", "smtp.example.com", "--port", "25abc", "--ssl", "none")

		// Assert
		Expect(err).To(MatchError(ContainSubstring("failed")))
		Expect(out.String()).To(ContainSubstring("Invalid username or password"))
		Expect(out.String()).To(ContainSubstring("Connection failed"))

		mu.Lock()
		defer mu.Unlock()
		Expect(*received[0].PrimaryPort).To(Equal(25))
		Expect(received[0].UseSSL).To(Equal("none"))
	})
})
