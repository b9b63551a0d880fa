package cmd

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type stoppable interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context)
}

// serve runs srv until it fails or ctx is done, then stops it gracefully.
func serve(ctx context.Context, name string, srv stoppable) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	zap.S().Infow("server started", "server", name)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zap.S().Infow("shutting down", "server", name)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	srv.Stop(shutdownCtx)

	return nil
}
