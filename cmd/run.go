package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/smtp-gateway-agent/api/v1"
	"github.com/kubev2v/smtp-gateway-agent/internal/config"
	"github.com/kubev2v/smtp-gateway-agent/internal/handlers"
	"github.com/kubev2v/smtp-gateway-agent/internal/server"
	"github.com/kubev2v/smtp-gateway-agent/internal/server/middlewares"
	"github.com/kubev2v/smtp-gateway-agent/internal/services"
	"github.com/kubev2v/smtp-gateway-agent/internal/store"
	"github.com/kubev2v/smtp-gateway-agent/internal/store/migrations"
	"github.com/kubev2v/smtp-gateway-agent/pkg/scheduler"
	"github.com/kubev2v/smtp-gateway-agent/pkg/validator"
)

func NewRunCommand(cfg *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Serve the gateway configuration API",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return validateConfiguration(cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			db, err := store.NewDB(store.MemoryDB)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}

			if err := migrations.Run(ctx, db); err != nil {
				_ = db.Close()
				return fmt.Errorf("failed to run migrations: %w", err)
			}

			st := store.NewStore(db)
			defer func() {
				if err := st.Close(); err != nil {
					zap.S().Errorw("failed to close store", "error", err)
				}
			}()

			sched := scheduler.NewScheduler(cfg.Tester.NumWorkers)
			defer sched.Close()

			client, err := validator.NewClient(cfg.Tester.ValidatorURL, cfg.Tester.RequestTimeout)
			if err != nil {
				return err
			}

			tester := services.NewConnectionTester(sched, st, client, cfg.Tester.ResetDelay)
			defer tester.Stop()

			auth := services.NewAuthenticator(cfg.Auth.Username, cfg.Auth.Password)
			warnOpenLoginGate(auth)
			h := handlers.New(services.NewGatewayService(st), tester, auth)

			srv, err := server.NewServer(server.Options{
				HTTPPort:      cfg.Server.HTTPPort,
				ServerMode:    cfg.Server.ServerMode,
				StaticsFolder: cfg.Server.StaticsFolder,
				BasePath:      server.APIV1,
				Middlewares: []gin.HandlerFunc{
					middlewares.BasicAuth(auth, server.APIV1+"/login"),
				},
			}, func(router *gin.RouterGroup) {
				v1.RegisterHandlers(router, h)
			})
			if err != nil {
				return err
			}

			zap.S().Infow("agent starting",
				"http-port", cfg.Server.HTTPPort,
				"server-mode", cfg.Server.ServerMode,
				"validator-url", cfg.Tester.ValidatorURL,
				"login-gate", auth.Enabled(),
			)

			return serve(ctx, "agent", srv)
		},
	}

	registerRunFlags(cmd, cfg)

	return cmd
}

func registerRunFlags(cmd *cobra.Command, cfg *config.Configuration) {
	flags := cmd.Flags()

	flags.IntVar(&cfg.Server.HTTPPort, "server-http-port", cfg.Server.HTTPPort, "Port of the API server")
	flags.StringVar(&cfg.Server.ServerMode, "server-mode", cfg.Server.ServerMode, "Server mode (dev, prod)")
	flags.StringVar(&cfg.Server.StaticsFolder, "server-statics-folder", cfg.Server.StaticsFolder, "Folder of the UI assets served in prod mode")

	flags.StringVar(&cfg.Tester.ValidatorURL, "validator-url", cfg.Tester.ValidatorURL, "Base URL of the SMTP validation service")
	flags.DurationVar(&cfg.Tester.RequestTimeout, "validator-request-timeout", cfg.Tester.RequestTimeout, "Timeout of one validation request")
	flags.DurationVar(&cfg.Tester.ResetDelay, "reset-delay", cfg.Tester.ResetDelay, "Delay before a finished test reverts to idle")
	flags.IntVar(&cfg.Tester.NumWorkers, "num-workers", cfg.Tester.NumWorkers, "Number of scheduler workers")

	flags.StringVar(&cfg.Auth.Username, "auth-username", cfg.Auth.Username, "Login gate username")
	flags.StringVar(&cfg.Auth.Password, "auth-password", cfg.Auth.Password, "Login gate password")
}

func validateConfiguration(cfg *config.Configuration) error {
	switch cfg.Server.ServerMode {
	case server.DevServer:
	case server.ProductionServer:
		if cfg.Server.StaticsFolder == "" {
			return errors.New("statics folder must be set when server mode is prod")
		}
	default:
		return fmt.Errorf("invalid server mode %q: must be 'dev' or 'prod'", cfg.Server.ServerMode)
	}

	if err := validatePort("http-port", cfg.Server.HTTPPort); err != nil {
		return err
	}

	u, err := url.Parse(cfg.Tester.ValidatorURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid validator-url %q: must be an absolute URL", cfg.Tester.ValidatorURL)
	}

	if cfg.Tester.RequestTimeout <= 0 {
		return fmt.Errorf("invalid validator-request-timeout %s: must be positive", cfg.Tester.RequestTimeout)
	}

	if cfg.Tester.ResetDelay <= 0 {
		return fmt.Errorf("invalid reset-delay %s: must be positive", cfg.Tester.ResetDelay)
	}

	// a pending reset holds a worker while it waits
	if cfg.Tester.NumWorkers < 2 {
		return fmt.Errorf("invalid num-workers %d: must be at least 2", cfg.Tester.NumWorkers)
	}

	if (cfg.Auth.Username == "") != (cfg.Auth.Password == "") {
		return errors.New("auth-username and auth-password must be set together")
	}

	return nil
}

func validatePort(name string, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid %s %d: must be between 1 and 65535", name, port)
	}
	return nil
}

func warnOpenLoginGate(auth *services.Authenticator) {
	if auth.Enabled() {
		return
	}
	zap.S().Named("auth").Warnw("login gate disabled: every request is accepted",
		"hint", "set auth-username and auth-password to require credentials")
}
