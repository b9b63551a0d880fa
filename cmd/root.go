package cmd

import (
	"fmt"
	"os"

	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/kubev2v/smtp-gateway-agent/internal/config"
)

const envPrefix = "SMTP_AGENT"

func NewRootCommand(cfg *config.Configuration) *cobra.Command {
	root := &cobra.Command{
		Use:           "smtp-gateway-agent",
		Short:         "Edit a device's outbound SMTP gateway and test the connection",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cobrautil.SyncViperPreRunE(envPrefix)(cmd, args); err != nil {
				return err
			}

			logger, err := newLogger(cfg.Log)
			if err != nil {
				return err
			}
			zap.ReplaceGlobals(logger)

			zap.S().Debugw("configuration", "config", cfg.DebugMap())
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = zap.L().Sync()
		},
	}

	registerLogFlags(root, cfg)

	root.AddCommand(
		NewRunCommand(cfg),
		NewValidatorCommand(cfg),
		NewMailSinkCommand(cfg),
		NewCheckCommand(cfg),
	)

	return root
}

func registerLogFlags(cmd *cobra.Command, cfg *config.Configuration) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "Log level (debug, info, warn, error)")
	flags.StringVar(&cfg.Log.Format, "log-format", cfg.Log.Format, "Log format (console, json)")
	flags.StringVar(&cfg.Log.File, "log-file", cfg.Log.File, "Also write logs to this file, rotated")
	flags.IntVar(&cfg.Log.MaxSizeMB, "log-max-size", cfg.Log.MaxSizeMB, "Maximum size in megabytes of the log file before rotation")
	flags.IntVar(&cfg.Log.MaxBackups, "log-max-backups", cfg.Log.MaxBackups, "Number of rotated log files to keep")
	flags.IntVar(&cfg.Log.MaxAgeDays, "log-max-age", cfg.Log.MaxAgeDays, "Days to keep rotated log files")
}

func newLogger(cfg config.Log) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log-level %q: %w", cfg.Level, err)
	}

	var encoder zapcore.Encoder
	switch cfg.Format {
	case "json":
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encCfg)
	case "console":
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'console' or 'json'", cfg.Format)
	}

	sinks := []zapcore.WriteSyncer{zapcore.Lock(os.Stderr)}
	if cfg.File != "" {
		sinks = append(sinks, zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(sinks...), level)
	return zap.New(core, zap.AddCaller()), nil
}
