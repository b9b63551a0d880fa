package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/kubev2v/smtp-gateway-agent/internal/models"
	srvErrors "github.com/kubev2v/smtp-gateway-agent/pkg/errors"
)

// TestRunStore keeps completed connection test runs.
type TestRunStore struct {
	db QueryInterceptor
}

func NewTestRunStore(db QueryInterceptor) *TestRunStore {
	return &TestRunStore{db: db}
}

func (s *TestRunStore) Insert(ctx context.Context, run models.TestRun) error {
	diagnostics, err := json.Marshal(run.Diagnostics)
	if err != nil {
		return err
	}

	query, args, err := sq.Insert("test_runs").
		Columns("id", "status", "diagnostics", "started_at", "completed_at").
		Values(run.ID.String(), string(run.Status), string(diagnostics), run.StartedAt, run.CompletedAt).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *TestRunStore) Get(ctx context.Context, id uuid.UUID) (*models.TestRun, error) {
	query, args, err := sq.Select("id", "status", "diagnostics", "started_at", "completed_at").
		From("test_runs").
		Where(sq.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return nil, err
	}

	run, err := scanRun(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewTestRunNotFoundError()
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// List returns at most limit runs, newest first.
func (s *TestRunStore) List(ctx context.Context, limit uint64) ([]models.TestRun, error) {
	query, args, err := sq.Select("id", "status", "diagnostics", "started_at", "completed_at").
		From("test_runs").
		OrderBy("started_at DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []models.TestRun{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*models.TestRun, error) {
	var (
		id, status, diagnostics string
		startedAt, completedAt  time.Time
	)
	if err := row.Scan(&id, &status, &diagnostics, &startedAt, &completedAt); err != nil {
		return nil, err
	}

	runID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	run := &models.TestRun{
		ID:          runID,
		Status:      models.TestStatus(status),
		StartedAt:   startedAt,
		CompletedAt: completedAt,
	}
	if err := json.Unmarshal([]byte(diagnostics), &run.Diagnostics); err != nil {
		return nil, err
	}
	return run, nil
}
