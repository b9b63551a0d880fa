package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kubev2v/smtp-gateway-agent/internal/config"
	"github.com/kubev2v/smtp-gateway-agent/internal/models"
	"github.com/kubev2v/smtp-gateway-agent/pkg/validator"
)

// checkOptions is the gateway under test, entered on the command line the
// same way it is entered in the editor.
type checkOptions struct {
	gateway models.GatewayConfig
	useSSL  string
	auth    string
}

func NewCheckCommand(cfg *config.Configuration) *cobra.Command {
	opts := &checkOptions{gateway: models.DefaultGatewayConfig()}
	opts.useSSL = string(opts.gateway.UseSSL)
	opts.auth = string(opts.gateway.SMTPAuth)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run one connection test against the validation service",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			presetFromEnv(cmd)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.gateway.UseSSL = models.SSLMode(opts.useSSL)
			opts.gateway.SMTPAuth = models.AuthMechanism(opts.auth)

			client, err := validator.NewClient(cfg.Tester.ValidatorURL, cfg.Tester.RequestTimeout)
			if err != nil {
				return err
			}

			outcome := validator.Interpret(client.Validate(cmd.Context(), validator.NewRequest(opts.gateway)))
			printOutcome(cmd.OutOrStdout(), outcome)

			if outcome.Status != models.TestStatusSuccess {
				return fmt.Errorf("connection test %s", outcome.Status)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Tester.ValidatorURL, "validator-url", cfg.Tester.ValidatorURL, "Base URL of the SMTP validation service")
	flags.DurationVar(&cfg.Tester.RequestTimeout, "validator-request-timeout", cfg.Tester.RequestTimeout, "Timeout of the validation request")
	flags.StringVar(&opts.gateway.PrimaryGateway, "host", "", "Gateway host name or address")
	flags.StringVar(&opts.gateway.PrimaryPort, "port", opts.gateway.PrimaryPort, "Gateway port")
	flags.StringVar(&opts.gateway.ReplyAddress, "reply-address", "", "Reply address")
	flags.StringVar(&opts.useSSL, "ssl", opts.useSSL, "Connection security (none, negotiate, ssl, tls)")
	flags.StringVar(&opts.auth, "auth", opts.auth, "Authentication (none, login-plain, cram-md5)")
	flags.StringVar(&opts.gateway.DeviceUserid, "user", "", "Device user id")
	flags.StringVar(&opts.gateway.DevicePassword, "password", "", "Device password")

	_ = cmd.MarkFlagRequired("host")

	return cmd
}

// presetFromEnv fills unset flags from SMTP_AGENT_* variables so required
// flags can come from the environment.
func presetFromEnv(cmd *cobra.Command) {
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	required := make(map[*pflag.Flag]bool)
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if ann := f.Annotations[cobra.BashCompOneRequiredFlag]; len(ann) > 0 && ann[0] == "true" {
			required[f] = true
		}
	})

	cobraflags.PresetRequiredFlags(envPrefix, required, cmd)
}

var kindColors = map[models.DiagnosticKind]*color.Color{
	models.DiagnosticInfo:    color.New(color.FgCyan),
	models.DiagnosticSuccess: color.New(color.FgGreen),
	models.DiagnosticWarning: color.New(color.FgYellow),
	models.DiagnosticError:   color.New(color.FgRed),
}

func printOutcome(w io.Writer, outcome models.TestOutcome) {
	for _, line := range outcome.Diagnostics {
		c, ok := kindColors[line.Kind]
		if !ok {
			fmt.Fprintln(w, line.Message)
			continue
		}
		_, _ = c.Fprintln(w, line.Message)
	}

	switch outcome.Status {
	case models.TestStatusSuccess:
		_, _ = color.New(color.FgGreen, color.Bold).Fprintln(w, "Connection successful")
	default:
		_, _ = color.New(color.FgRed, color.Bold).Fprintln(w, "Connection failed")
	}
}
