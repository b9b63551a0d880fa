package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/kubev2v/smtp-gateway-agent/internal/models"
	"github.com/kubev2v/smtp-gateway-agent/internal/store"
	"github.com/kubev2v/smtp-gateway-agent/pkg/mask"
)

// GatewayService edits the outbound mail gateway draft.
type GatewayService struct {
	store *store.Store
}

func NewGatewayService(st *store.Store) *GatewayService {
	return &GatewayService{store: st}
}

// UpdateField replaces one field and leaves the others untouched.
// The value is stored as entered.
func (g *GatewayService) UpdateField(ctx context.Context, name, value string) error {
	if err := g.store.Gateway().UpdateField(ctx, name, value); err != nil {
		return err
	}

	if name == models.FieldDevicePassword {
		zap.S().Named("gateway_service").Debugw("field updated", "field", name)
		return nil
	}

	zap.S().Named("gateway_service").Debugw("field updated", "field", name, "value", value)
	return nil
}

func (g *GatewayService) Snapshot(ctx context.Context) (models.GatewayConfig, error) {
	return g.store.Gateway().Get(ctx)
}

// Save writes the current draft to the log. Nothing is persisted.
func (g *GatewayService) Save(ctx context.Context) (models.GatewayConfig, error) {
	cfg, err := g.store.Gateway().Get(ctx)
	if err != nil {
		return models.GatewayConfig{}, err
	}

	zap.S().Named("gateway_service").Infow("gateway configuration saved",
		"primaryGateway", cfg.PrimaryGateway,
		"primaryPort", cfg.PrimaryPort,
		"replyAddress", mask.Email(cfg.ReplyAddress),
		"useSSL", cfg.UseSSL,
		"smtpAuth", cfg.SMTPAuth,
		"deviceUserid", mask.Username(cfg.DeviceUserid),
		"hasDevicePassword", cfg.DevicePassword != "",
	)

	return cfg, nil
}
