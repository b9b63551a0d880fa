package v1

import (
	"github.com/google/uuid"

	"github.com/kubev2v/smtp-gateway-agent/internal/models"
)

// NewGatewayConfig converts the draft to its API form. The password itself is
// never returned, only whether one is set.
func NewGatewayConfig(cfg models.GatewayConfig) GatewayConfig {
	return GatewayConfig{
		PrimaryGateway:    cfg.PrimaryGateway,
		PrimaryPort:       cfg.PrimaryPort,
		ReplyAddress:      cfg.ReplyAddress,
		UseSSL:            GatewayConfigUseSSL(cfg.UseSSL),
		SmtpAuth:          GatewayConfigSmtpAuth(cfg.SMTPAuth),
		DeviceUserid:      cfg.DeviceUserid,
		HasDevicePassword: cfg.DevicePassword != "",
	}
}

func NewTestRun(run models.TestRun) TestRun {
	t := TestRun{
		Status:      newTestRunStatus(run.Status),
		Diagnostics: make([]DiagnosticLine, 0, len(run.Diagnostics)),
	}

	for _, d := range run.Diagnostics {
		t.Diagnostics = append(t.Diagnostics, DiagnosticLine{
			Kind:    DiagnosticLineKind(d.Kind),
			Message: d.Message,
		})
	}

	// the initial idle state has no run behind it
	if run.ID != uuid.Nil {
		id := run.ID
		t.Id = &id
	}
	if !run.StartedAt.IsZero() {
		startedAt := run.StartedAt
		t.StartedAt = &startedAt
	}
	if !run.CompletedAt.IsZero() {
		completedAt := run.CompletedAt
		t.CompletedAt = &completedAt
	}

	return t
}

func NewTestRunList(runs []models.TestRun) TestRunList {
	l := TestRunList{
		Runs:  make([]TestRun, 0, len(runs)),
		Total: len(runs),
	}
	for _, r := range runs {
		l.Runs = append(l.Runs, NewTestRun(r))
	}
	return l
}

func newTestRunStatus(s models.TestStatus) TestRunStatus {
	switch s {
	case models.TestStatusTesting:
		return TestRunStatusTesting
	case models.TestStatusSuccess:
		return TestRunStatusSuccess
	case models.TestStatusFailed:
		return TestRunStatusFailed
	default:
		return TestRunStatusIdle
	}
}
