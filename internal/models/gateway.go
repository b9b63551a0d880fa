package models

// SSLMode selects how the device secures its connection to the gateway.
type SSLMode string

const (
	SSLModeNone SSLMode = "none"
	// SSLModeNegotiate upgrades with STARTTLS when the gateway offers it.
	SSLModeNegotiate SSLMode = "negotiate"
	SSLModeSSL       SSLMode = "ssl"
	SSLModeTLS       SSLMode = "tls"
)

// AuthMechanism is the SMTP authentication the device uses.
type AuthMechanism string

const (
	AuthMechanismNone       AuthMechanism = "none"
	AuthMechanismLoginPlain AuthMechanism = "login-plain"
	AuthMechanismCramMD5    AuthMechanism = "cram-md5"
)

// Field names of the gateway configuration, as used by the editor.
const (
	FieldPrimaryGateway = "primaryGateway"
	FieldPrimaryPort    = "primaryPort"
	FieldReplyAddress   = "replyAddress"
	FieldUseSSL         = "useSSL"
	FieldSMTPAuth       = "smtpAuth"
	FieldDeviceUserid   = "deviceUserid"
	FieldDevicePassword = "devicePassword"
)

// GatewayConfig is the draft of the outbound mail gateway settings.
// Values are kept as entered; nothing is validated on write.
type GatewayConfig struct {
	PrimaryGateway string
	PrimaryPort    string
	ReplyAddress   string
	UseSSL         SSLMode
	SMTPAuth       AuthMechanism
	DeviceUserid   string
	DevicePassword string
}

// DefaultGatewayConfig returns the settings shown before anything is edited.
func DefaultGatewayConfig() GatewayConfig {
	return GatewayConfig{
		PrimaryPort: "587",
		UseSSL:      SSLModeNegotiate,
		SMTPAuth:    AuthMechanismLoginPlain,
	}
}

// NewGatewayConfigFromFields projects a flat field map onto the defaults.
// Unknown field names are ignored.
func NewGatewayConfigFromFields(fields map[string]string) GatewayConfig {
	cfg := DefaultGatewayConfig()
	for name, value := range fields {
		switch name {
		case FieldPrimaryGateway:
			cfg.PrimaryGateway = value
		case FieldPrimaryPort:
			cfg.PrimaryPort = value
		case FieldReplyAddress:
			cfg.ReplyAddress = value
		case FieldUseSSL:
			cfg.UseSSL = SSLMode(value)
		case FieldSMTPAuth:
			cfg.SMTPAuth = AuthMechanism(value)
		case FieldDeviceUserid:
			cfg.DeviceUserid = value
		case FieldDevicePassword:
			cfg.DevicePassword = value
		}
	}
	return cfg
}
