package models

import (
	"time"

	"github.com/google/uuid"
)

// TestStatus is the state of the connection test.
type TestStatus string

const (
	// TestStatusIdle - no test running, ready for a trigger
	TestStatusIdle TestStatus = "idle"
	// TestStatusTesting - waiting for the validation service
	TestStatusTesting TestStatus = "testing"
	// TestStatusSuccess - validator reported success (auto-transitions to idle)
	TestStatusSuccess TestStatus = "success"
	// TestStatusFailed - validator reported failure or could not be reached (auto-transitions to idle)
	TestStatusFailed TestStatus = "failed"
)

// DiagnosticKind selects how a diagnostic line is displayed.
type DiagnosticKind string

const (
	DiagnosticInfo    DiagnosticKind = "info"
	DiagnosticSuccess DiagnosticKind = "success"
	DiagnosticWarning DiagnosticKind = "warning"
	DiagnosticError   DiagnosticKind = "error"
)

// DiagnosticLine is one reported step or outcome of a validation attempt.
type DiagnosticLine struct {
	Kind    DiagnosticKind `json:"kind"`
	Message string         `json:"message"`
}

// TestRun is one invocation of the connection test.
type TestRun struct {
	ID          uuid.UUID
	Status      TestStatus
	Diagnostics []DiagnosticLine
	StartedAt   time.Time
	CompletedAt time.Time
}

// TestOutcome is what a finished validation attempt resolves to.
type TestOutcome struct {
	Status      TestStatus
	Diagnostics []DiagnosticLine
}

func NewTestRun() TestRun {
	return TestRun{
		ID:          uuid.New(),
		Status:      TestStatusTesting,
		Diagnostics: []DiagnosticLine{},
		StartedAt:   time.Now(),
	}
}

// Complete applies the outcome to the run.
func (t *TestRun) Complete(o TestOutcome) {
	t.Status = o.Status
	t.Diagnostics = o.Diagnostics
	t.CompletedAt = time.Now()
}

// Copy returns a run that does not share the diagnostics slice.
func (t TestRun) Copy() TestRun {
	c := t
	c.Diagnostics = make([]DiagnosticLine, len(t.Diagnostics))
	copy(c.Diagnostics, t.Diagnostics)
	return c
}

func (t TestRun) IsTesting() bool {
	return t.Status == TestStatusTesting
}
