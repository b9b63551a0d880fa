package services

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kubev2v/smtp-gateway-agent/internal/models"
	"github.com/kubev2v/smtp-gateway-agent/internal/store"
	srvErrors "github.com/kubev2v/smtp-gateway-agent/pkg/errors"
	"github.com/kubev2v/smtp-gateway-agent/pkg/report"
	"github.com/kubev2v/smtp-gateway-agent/pkg/scheduler"
	"github.com/kubev2v/smtp-gateway-agent/pkg/validator"
)

const DefaultResetDelay = 5 * time.Second

// Validator sends one request to the SMTP validation service.
type Validator interface {
	Validate(ctx context.Context, r validator.Request) (*validator.Response, error)
}

// ConnectionTester drives the connection test: idle -> testing -> success|failed -> idle.
// Only one validation request is in flight at a time.
type ConnectionTester struct {
	scheduler  *scheduler.Scheduler
	store      *store.Store
	validator  Validator
	resetDelay time.Duration

	mu    sync.Mutex
	run   models.TestRun
	reset *scheduler.Future[scheduler.Result[any]]

	done   chan any
	cancel context.CancelFunc
}

func NewConnectionTester(s *scheduler.Scheduler, st *store.Store, v Validator, resetDelay time.Duration) *ConnectionTester {
	return &ConnectionTester{
		scheduler:  s,
		store:      st,
		validator:  v,
		resetDelay: resetDelay,
		run: models.TestRun{
			Status:      models.TestStatusIdle,
			Diagnostics: []models.DiagnosticLine{},
		},
	}
}

// Status returns a copy of the current run.
func (t *ConnectionTester) Status() models.TestRun {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.run.Copy()
}

// Start snapshots the gateway draft and sends it to the validation service.
// It returns TestInProgressError while a previous request is pending.
func (t *ConnectionTester) Start(ctx context.Context) (models.TestRun, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.run.IsTesting() {
		return models.TestRun{}, srvErrors.NewTestInProgressError()
	}

	cfg, err := t.store.Gateway().Get(ctx)
	if err != nil {
		return models.TestRun{}, err
	}

	// the previous run's reset must never touch the new run
	if t.reset != nil {
		t.reset.Stop()
		t.reset = nil
	}

	t.run = models.NewTestRun()
	req := validator.NewRequest(cfg)

	future := t.scheduler.AddWork(func(ctx context.Context) (any, error) {
		return t.validator.Validate(ctx, req)
	})

	runCtx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.done = make(chan any)
	go t.await(runCtx, t.done, t.run.ID, future)

	zap.S().Named("connection_tester").Infow("connection test started",
		"id", t.run.ID, "gateway", req.PrimaryGateway, "port", cfg.PrimaryPort)

	return t.run.Copy(), nil
}

func (t *ConnectionTester) await(ctx context.Context, done chan any, id uuid.UUID, future *scheduler.Future[scheduler.Result[any]]) {
	defer close(done)

	var result scheduler.Result[any]
	select {
	case <-ctx.Done():
		future.Stop()
		result = <-future.C()
	case result = <-future.C():
	}

	var resp *validator.Response
	if result.Err == nil {
		resp, _ = result.Data.(*validator.Response)
	}
	outcome := validator.Interpret(resp, result.Err)

	t.mu.Lock()
	if t.run.ID != id {
		t.mu.Unlock()
		return
	}
	t.run.Complete(outcome)
	completed := t.run.Copy()
	t.reset = t.scheduler.AddDelayedWork(t.resetDelay, t.resetToIdle(id))
	if t.done == done {
		t.cancel = nil
		t.done = nil
	}
	t.mu.Unlock()

	zap.S().Named("connection_tester").Infow("connection test finished",
		"id", id, "status", completed.Status, "lines", len(completed.Diagnostics))

	if err := t.store.TestRuns().Insert(context.Background(), completed); err != nil {
		zap.S().Named("connection_tester").Errorw("failed to record test run", "id", id, "error", err)
	}
}

// resetToIdle returns the status of run id to idle. Diagnostics are kept
// until the next Start.
func (t *ConnectionTester) resetToIdle(id uuid.UUID) scheduler.Work[any] {
	return func(ctx context.Context) (any, error) {
		t.mu.Lock()
		defer t.mu.Unlock()

		if t.run.ID != id || t.run.IsTesting() {
			return nil, nil
		}

		t.run.Status = models.TestStatusIdle
		t.reset = nil
		zap.S().Named("connection_tester").Debugw("connection test reset to idle", "id", id)

		return nil, nil
	}
}

// Stop cancels the pending request and the pending reset.
func (t *ConnectionTester) Stop() {
	t.mu.Lock()
	cancel := t.cancel
	done := t.done
	if t.reset != nil {
		t.reset.Stop()
		t.reset = nil
	}
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	if done != nil {
		<-done
	}

	// await may have scheduled a reset while we were waiting
	t.mu.Lock()
	if t.reset != nil {
		t.reset.Stop()
		t.reset = nil
	}
	t.mu.Unlock()
}

// History returns the completed runs, newest first.
func (t *ConnectionTester) History(ctx context.Context, limit uint64) ([]models.TestRun, error) {
	return t.store.TestRuns().List(ctx, limit)
}

// GetRun returns one completed run.
func (t *ConnectionTester) GetRun(ctx context.Context, id uuid.UUID) (*models.TestRun, error) {
	return t.store.TestRuns().Get(ctx, id)
}

// ExportHistory writes the last limit runs as an xlsx workbook.
func (t *ConnectionTester) ExportHistory(ctx context.Context, w io.Writer, limit uint64) error {
	runs, err := t.store.TestRuns().List(ctx, limit)
	if err != nil {
		return err
	}
	return report.WriteXLSX(w, runs)
}
