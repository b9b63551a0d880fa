package validator

import "github.com/kubev2v/smtp-gateway-agent/internal/models"

// Request is the body of POST /test-smtp.
type Request struct {
	PrimaryGateway string `json:"primaryGateway"`
	// PrimaryPort is null when the entered port has no numeric prefix.
	PrimaryPort    *int   `json:"primaryPort" validate:"required,min=1,max=65535"`
	ReplyAddress   string `json:"replyAddress"`
	UseSSL         string `json:"useSSL" validate:"oneof=none negotiate ssl tls"`
	SMTPAuth       string `json:"smtpAuth" validate:"oneof=none login-plain cram-md5"`
	DeviceUserid   string `json:"deviceUserid"`
	DevicePassword string `json:"devicePassword"`
}

// Detail is one diagnostic line as sent by the validation service.
type Detail struct {
	Type    models.DiagnosticKind `json:"type"`
	Message string                `json:"message"`
}

// Response is the body answered by POST /test-smtp.
type Response struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Details []Detail `json:"details"`
}

// Info is the body answered by GET / on the validation service.
type Info struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
