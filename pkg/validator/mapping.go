package validator

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/kubev2v/smtp-gateway-agent/internal/models"
)

// TransportFailurePrefix marks diagnostics produced when the validation
// service itself could not be reached, as opposed to an SMTP-level failure.
const TransportFailurePrefix = "✗ Failed to connect to validation service: "

// NewRequest builds the validation request from a draft snapshot.
func NewRequest(cfg models.GatewayConfig) Request {
	return Request{
		PrimaryGateway: cfg.PrimaryGateway,
		PrimaryPort:    ParsePort(cfg.PrimaryPort),
		ReplyAddress:   cfg.ReplyAddress,
		UseSSL:         string(cfg.UseSSL),
		SMTPAuth:       string(cfg.SMTPAuth),
		DeviceUserid:   cfg.DeviceUserid,
		DevicePassword: cfg.DevicePassword,
	}
}

// ParsePort reads the integer prefix of s: leading white space, an optional
// sign and at least one digit ("587", " 25", "465abc"). It returns nil when
// there is no such prefix. The range is left to the validation service.
func ParsePort(s string) *int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return nil
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return nil
	}
	return &n
}

// Interpret folds the outcome of a validation call into a test outcome.
// Any error is reported as a single synthetic error line.
func Interpret(resp *Response, err error) models.TestOutcome {
	if err != nil {
		return models.TestOutcome{
			Status: models.TestStatusFailed,
			Diagnostics: []models.DiagnosticLine{
				{Kind: models.DiagnosticError, Message: TransportFailurePrefix + err.Error()},
			},
		}
	}

	if resp == nil {
		return Interpret(nil, errEmptyResponse)
	}

	lines := make([]models.DiagnosticLine, 0, len(resp.Details))
	for _, d := range resp.Details {
		lines = append(lines, models.DiagnosticLine{Kind: d.Type, Message: d.Message})
	}

	status := models.TestStatusFailed
	if resp.Success {
		status = models.TestStatusSuccess
	}

	return models.TestOutcome{Status: status, Diagnostics: lines}
}
