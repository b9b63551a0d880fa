package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/kubev2v/smtp-gateway-agent/internal/models"
)

// GatewayStore holds the gateway draft as a flat field -> value table.
type GatewayStore struct {
	db QueryInterceptor
}

func NewGatewayStore(db QueryInterceptor) *GatewayStore {
	return &GatewayStore{db: db}
}

// UpdateField replaces the value of one field and leaves the others untouched.
func (s *GatewayStore) UpdateField(ctx context.Context, name, value string) error {
	query, args, err := sq.Insert("gateway_config").
		Columns("field", "value").
		Values(name, value).
		Suffix("ON CONFLICT (field) DO UPDATE SET value = EXCLUDED.value").
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// Fields returns every field written so far.
func (s *GatewayStore) Fields(ctx context.Context) (map[string]string, error) {
	query, args, err := sq.Select("field", "value").
		From("gateway_config").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		fields[name] = value
	}
	return fields, rows.Err()
}

// Get returns the current draft. Fields never written keep their defaults.
func (s *GatewayStore) Get(ctx context.Context) (models.GatewayConfig, error) {
	fields, err := s.Fields(ctx)
	if err != nil {
		return models.GatewayConfig{}, err
	}
	return models.NewGatewayConfigFromFields(fields), nil
}
