package handlers

import (
	"context"
	"io"

	"github.com/google/uuid"

	v1 "github.com/kubev2v/smtp-gateway-agent/api/v1"
	"github.com/kubev2v/smtp-gateway-agent/internal/models"
)

type GatewayService interface {
	UpdateField(ctx context.Context, name, value string) error
	Snapshot(ctx context.Context) (models.GatewayConfig, error)
	Save(ctx context.Context) (models.GatewayConfig, error)
}

type ConnectionTester interface {
	Status() models.TestRun
	Start(ctx context.Context) (models.TestRun, error)
	History(ctx context.Context, limit uint64) ([]models.TestRun, error)
	GetRun(ctx context.Context, id uuid.UUID) (*models.TestRun, error)
	ExportHistory(ctx context.Context, w io.Writer, limit uint64) error
}

type Authenticator interface {
	Verify(username, password string) error
}

type Handler struct {
	gatewaySrv GatewayService
	testerSrv  ConnectionTester
	auth       Authenticator
}

var _ v1.ServerInterface = (*Handler)(nil)

func New(gatewaySrv GatewayService, testerSrv ConnectionTester, auth Authenticator) *Handler {
	return &Handler{
		gatewaySrv: gatewaySrv,
		testerSrv:  testerSrv,
		auth:       auth,
	}
}
